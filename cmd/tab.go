package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
)

var tabCmd = &cobra.Command{
	Use:   "tab <group> [tab]",
	Short: "Select a tab or list the tabs of a tab group",
	Long: `Select a tab of the tab group at a label path. Without a tab name the
group's tabs are listed.

Examples:
  winium-desktop tab --app-id ledger Accounts Payments
  winium-desktop tab --app-id ledger Accounts`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTab,
}

func init() {
	rootCmd.AddCommand(tabCmd)
}

func runTab(cmd *cobra.Command, args []string) error {
	return withSession(func(s *desktop.Session) error {
		group, err := lookup(s, desktop.SplitPath(args[0]))
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return report(s.Tabs(group.ID))
		}
		if args[1] == "" {
			return fmt.Errorf("tab name is empty")
		}
		return report(s.ClickTab(group.ID, args[1]))
	})
}
