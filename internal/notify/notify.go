// Package notify shows desktop notifications through an external notifier
// executable. Notifications are best effort: failures are logged and
// never returned.
package notify

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Level selects the notification icon.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultDuration is how long a notification stays up when none is given.
const DefaultDuration = 5 * time.Second

// Notification is one message for the notifier.
type Notification struct {
	Priority int
	Message  string
	Duration time.Duration
	Level    Level
}

// Args renders n as notifier command line arguments.
func (n Notification) Args() []string {
	d := n.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	level := n.Level
	if level == "" {
		level = LevelInfo
	}
	return []string{
		"-p", strconv.Itoa(n.Priority),
		"-m", n.Message,
		"-d", strconv.Itoa(int(d / time.Millisecond)),
		"-l", string(level),
	}
}

// Notifier launches the notifier executable without waiting for it.
type Notifier struct {
	Executable string

	log       logrus.FieldLogger
	supported bool
	lookPath  func(string) (string, error)
	start     func(*exec.Cmd) error
}

// New returns a notifier for exe. An empty exe disables notifications.
func New(exe string, log logrus.FieldLogger) *Notifier {
	return &Notifier{
		Executable: exe,
		log:        log,
		supported:  supported,
		lookPath:   exec.LookPath,
		start:      startDetached,
	}
}

// Notify sends n. It does nothing off Windows or when the executable
// cannot be resolved.
func (nt *Notifier) Notify(n Notification) {
	if nt == nil || nt.Executable == "" {
		return
	}
	if !nt.supported {
		nt.log.Debugf("notifications are not supported on this platform")
		return
	}
	path, err := nt.lookPath(nt.Executable)
	if err != nil {
		nt.log.Debugf("notifier %s not found: %v", nt.Executable, err)
		return
	}
	cmd := exec.Command(path, n.Args()...)
	hideWindow(cmd)
	if err := nt.start(cmd); err != nil {
		nt.log.Warnf("notify: %v", err)
	}
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}
