// Package launch starts the application under test and applies its
// termination policy.
package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/winium-desktop/internal/config"
	"github.com/mj1618/winium-desktop/internal/platform"
)

// AppPath joins the launch directory and executable with a Windows
// separator, whatever the host OS.
func AppPath(l config.Launch) string {
	dir := strings.TrimRight(l.Path, `\/`)
	if dir == "" {
		return l.Executable
	}
	return dir + `\` + l.Executable
}

// Options builds the session options for cfg against the endpoint at url.
func Options(url string, cfg *config.DesktopConfig) platform.SessionOptions {
	return platform.SessionOptions{
		URL:         url,
		App:         AppPath(cfg.Launch),
		Args:        cfg.Launch.Args,
		LaunchDelay: cfg.StartupWait,
		Attach:      cfg.Launch.Terminate == config.TerminateAttach,
	}
}

// Open starts or attaches to the application and returns a driver whose
// Quit applies the termination policy. With a working directory the
// application is started here and the endpoint attaches to it; Quit then
// kills the started process, since the endpoint leaves attached
// applications running.
func Open(url string, cfg *config.DesktopConfig, log logrus.FieldLogger) (platform.Driver, error) {
	l := cfg.Launch
	if l.Terminate == config.TerminateKill {
		if n, err := KillStale(l.Executable, log); err != nil {
			log.Warnf("could not kill stale %s: %v", l.Executable, err)
		} else if n > 0 {
			log.Infof("killed %d stale %s process(es)", n, l.Executable)
		}
	}

	opts := Options(url, cfg)
	var started stopper
	if l.WorkingDir != "" && !opts.Attach {
		p, err := startApp(l)
		if err != nil {
			return nil, err
		}
		started = p
		log.Infof("started %s in %s, waiting %s", opts.App, l.WorkingDir, cfg.StartupWait)
		time.Sleep(cfg.StartupWait)
		opts.Attach = true
		opts.LaunchDelay = 0
	}

	d, err := platform.NewDriver(opts)
	if err != nil {
		if started != nil {
			_ = started.Kill()
		}
		return nil, err
	}
	return &managed{Driver: d, launch: l, started: started, log: log}, nil
}

// stopper is a process started by Open.
type stopper interface {
	Kill() error
}

var startApp = func(l config.Launch) (stopper, error) {
	cmd := exec.Command(AppPath(l), strings.Fields(l.Args)...)
	cmd.Dir = l.WorkingDir
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", AppPath(l), err)
	}
	go cmd.Wait() //nolint:errcheck
	return cmd.Process, nil
}

// managed applies the termination policy when the session ends.
type managed struct {
	platform.Driver
	launch  config.Launch
	started stopper
	log     logrus.FieldLogger
}

func (m *managed) Quit() error {
	err := m.Driver.Quit()
	if m.started != nil {
		if kerr := m.started.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			m.log.Warnf("could not stop %s: %v", m.launch.Executable, kerr)
		}
	}
	if m.launch.Terminate == config.TerminateKill {
		if n, kerr := KillStale(m.launch.Executable, m.log); kerr != nil {
			m.log.Warnf("could not kill %s: %v", m.launch.Executable, kerr)
		} else if n > 0 {
			m.log.Infof("killed %d leftover %s process(es)", n, m.launch.Executable)
		}
	}
	return err
}

// proc is the part of a gopsutil process used here.
type proc interface {
	Name() (string, error)
	Kill() error
}

var listProcesses = func() ([]proc, error) {
	all, err := process.Processes()
	if err != nil {
		return nil, err
	}
	out := make([]proc, len(all))
	for i, p := range all {
		out[i] = p
	}
	return out, nil
}

// KillStale kills every process whose name is exe, ignoring case. It
// returns how many were killed; processes that vanish meanwhile are
// skipped.
func KillStale(exe string, log logrus.FieldLogger) (int, error) {
	if exe == "" {
		return 0, nil
	}
	procs, err := listProcesses()
	if err != nil {
		return 0, fmt.Errorf("list processes: %w", err)
	}
	killed := 0
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !strings.EqualFold(name, exe) {
			continue
		}
		if err := p.Kill(); err != nil {
			log.Debugf("kill %s: %v", name, err)
			continue
		}
		killed++
	}
	return killed, nil
}
