package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/notify"
	"github.com/mj1618/winium-desktop/internal/output"
	"github.com/mj1618/winium-desktop/internal/version"
)

// Environment variables backing the persistent flags.
const (
	envURL      = "WINIUM_URL"
	envAppID    = "WINIUM_APP_ID"
	envDataDir  = "WINIUM_DATA_DIR"
	envLogLevel = "WINIUM_LOG_LEVEL"
	envNotifier = "WINIUM_NOTIFIER"
	envPassword = "WINIUM_PASSWORD"
)

// settings is the resolved global configuration: flags, then the
// environment, then defaults.
type settings struct {
	URL      string
	AppID    string
	DataDir  string
	LogLevel string
	Notifier string
}

var (
	opts     settings
	log      = newLogger()
	notifier *notify.Notifier
)

var rootCmd = &cobra.Command{
	Use:   "winium-desktop",
	Short: "Drive Windows desktop applications through a Winium endpoint",
	Long: `winium-desktop models a Windows application as a tree of labeled elements,
described in a JSON configuration, and drives it through a Winium
(WebDriver) endpoint: menus, tabs, login forms, dialogs and keystrokes.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	pf := rootCmd.PersistentFlags()
	pf.String("format", "yaml", "Output format: yaml, json")
	pf.Bool("pretty", false, "Indent JSON output")
	pf.String("app-id", "", "Application id of the configuration to use (env "+envAppID+")")
	pf.String("data-dir", "", "Directory searched for apps/<id>.json before the built-in configurations (env "+envDataDir+")")
	pf.String("url", "", "Winium endpoint, e.g. http://localhost:9999 (env "+envURL+")")
	pf.String("log-level", "warning", "Log level: debug, info, warning, error (env "+envLogLevel+")")
	pf.String("notify", "", "Notifier executable shown failed steps (env "+envNotifier+")")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		format, _ := pf.GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = pf.GetBool("pretty")

		opts = settings{
			URL:      flagOrEnv(cmd, "url", envURL),
			AppID:    flagOrEnv(cmd, "app-id", envAppID),
			DataDir:  flagOrEnv(cmd, "data-dir", envDataDir),
			LogLevel: flagOrEnv(cmd, "log-level", envLogLevel),
			Notifier: flagOrEnv(cmd, "notify", envNotifier),
		}
		level, err := logrus.ParseLevel(opts.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		notifier = notify.New(opts.Notifier, log)
		return nil
	}
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}
