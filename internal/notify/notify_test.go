package notify

import (
	"errors"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNotificationArgs(t *testing.T) {
	got := Notification{Priority: 2, Message: "login failed", Duration: 3 * time.Second, Level: LevelError}.Args()
	want := "-p 2 -m login failed -d 3000 -l error"
	if strings.Join(got, " ") != want {
		t.Errorf("args = %q, want %q", got, want)
	}

	got = Notification{Message: "hi"}.Args()
	if strings.Join(got, " ") != "-p 0 -m hi -d 5000 -l info" {
		t.Errorf("defaults = %q", got)
	}
}

func fakeNotifier(lookErr, startErr error) (*Notifier, *[]*exec.Cmd) {
	var started []*exec.Cmd
	n := New("notifier.exe", quietLog())
	n.supported = true
	n.lookPath = func(file string) (string, error) {
		if lookErr != nil {
			return "", lookErr
		}
		return `C:\tools\` + file, nil
	}
	n.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return startErr
	}
	return n, &started
}

func TestNotify(t *testing.T) {
	n, started := fakeNotifier(nil, nil)
	n.Notify(Notification{Message: "done"})
	if len(*started) != 1 {
		t.Fatalf("started %d processes, want 1", len(*started))
	}
	cmd := (*started)[0]
	if cmd.Path != `C:\tools\notifier.exe` || !strings.Contains(strings.Join(cmd.Args, " "), "-m done") {
		t.Errorf("cmd = %s %q", cmd.Path, cmd.Args)
	}
}

func TestNotify_NoOps(t *testing.T) {
	n, started := fakeNotifier(errors.New("not found"), nil)
	n.Notify(Notification{Message: "x"})
	if len(*started) != 0 {
		t.Error("unresolved executable should not start anything")
	}

	n, started = fakeNotifier(nil, nil)
	n.supported = false
	n.Notify(Notification{Message: "x"})
	if len(*started) != 0 {
		t.Error("unsupported platform should not start anything")
	}

	n, started = fakeNotifier(nil, nil)
	n.Executable = ""
	n.Notify(Notification{Message: "x"})
	if len(*started) != 0 {
		t.Error("empty executable should not start anything")
	}

	var nilNotifier *Notifier
	nilNotifier.Notify(Notification{Message: "x"})
}

func TestNotify_StartFailureIsSwallowed(t *testing.T) {
	n, started := fakeNotifier(nil, errors.New("access denied"))
	n.Notify(Notification{Message: "x"})
	if len(*started) != 1 {
		t.Errorf("started %d, want 1 attempt", len(*started))
	}
}
