package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
)

var loginCmd = &cobra.Command{
	Use:   "login <form>",
	Short: "Fill and submit a login form",
	Long: `Wait for the login form at a label path, set the credentials and submit.
When the form does not appear within its timeout the application is taken
to be logged in already.

The password may be passed in ` + envPassword + ` instead of --password.

Examples:
  winium-desktop login --app-id ledger Login --username alice --password secret`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("username", "", "User name")
	loginCmd.Flags().String("password", "", "Password (env "+envPassword+")")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password := flagOrEnv(cmd, "password", envPassword)
	if username == "" {
		return fmt.Errorf("--username is required")
	}
	return withSession(func(s *desktop.Session) error {
		form, err := lookup(s, desktop.SplitPath(args[0]))
		if err != nil {
			return err
		}
		return report(s.Login(form.ID, username, password))
	})
}
