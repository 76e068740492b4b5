package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/config"
	"github.com/mj1618/winium-desktop/internal/desktop"
	"github.com/mj1618/winium-desktop/internal/launch"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/notify"
	"github.com/mj1618/winium-desktop/internal/output"
)

// errStepFailed is returned after a failed result has been printed.
var errStepFailed = errors.New("step failed")

// flagOrEnv returns the flag value when it was set on the command line,
// else the environment variable, else the flag default.
func flagOrEnv(cmd *cobra.Command, name, env string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		f = rootCmd.PersistentFlags().Lookup(name)
	}
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	if f != nil {
		return f.DefValue
	}
	return ""
}

// labelsFromArgs accepts a label path as separate arguments or as one
// "A > B" argument.
func labelsFromArgs(args []string) []string {
	if len(args) == 1 {
		return desktop.SplitPath(args[0])
	}
	var labels []string
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			labels = append(labels, a)
		}
	}
	return labels
}

// openSession loads the configuration of appID, launches or attaches to
// the application and binds a session to it.
func openSession(appID string) (*desktop.Session, error) {
	reg := config.NewRegistry(config.DefaultSource(opts.DataDir))
	cfg, err := reg.Get(appID)
	if err != nil {
		return nil, err
	}
	driver, err := launch.Open(opts.URL, cfg, log.WithField("app", appID))
	if err != nil {
		return nil, err
	}
	s, err := desktop.NewSession(cfg, driver, reg.Source(), log)
	if err != nil {
		driver.Quit() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

// newSession is replaced in tests.
var newSession = openSession

// withSession runs fn on a session for the configured application and
// ends the session afterwards.
func withSession(fn func(s *desktop.Session) error) error {
	if opts.AppID == "" {
		return fmt.Errorf("no application: pass --app-id or set %s", envAppID)
	}
	s, err := newSession(opts.AppID)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warnf("close session: %v", err)
		}
	}()
	return fn(s)
}

// lookup resolves a label path, treating a missing element as a usage
// error.
func lookup(s *desktop.Session, labels []string) (*model.Element, error) {
	e, err := s.Lookup(labels...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.Join(labels, " > "), err)
	}
	return e, nil
}

// report prints res. A failed result raises a notification and makes the
// command exit non-zero.
func report(res desktop.Result, err error) error {
	if err != nil {
		return err
	}
	if perr := output.Print(res); perr != nil {
		return perr
	}
	if !res.OK {
		notifier.Notify(notify.Notification{
			Priority: 1,
			Message:  fmt.Sprintf("%s %s: %s", res.Action, res.Target, res.Message),
			Level:    notify.LevelError,
		})
		return errStepFailed
	}
	return nil
}
