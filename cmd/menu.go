package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
)

var menuCmd = &cobra.Command{
	Use:   "menu [item...]",
	Short: "Click a menu path or list the menu",
	Long: `Open each menu along a path and click the last item. Items match by label or
by name ignoring case and accelerators.

Examples:
  winium-desktop menu --app-id notepad File "Save As..."
  winium-desktop menu --app-id notepad "File > Save As..."
  winium-desktop menu --app-id notepad --list`,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().Bool("list", false, "List every menu path instead of clicking")
}

func runMenu(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	path := labelsFromArgs(args)
	if !list && len(path) == 0 {
		return fmt.Errorf("specify a menu path or --list")
	}
	return withSession(func(s *desktop.Session) error {
		if list {
			return report(s.MenuItems())
		}
		return report(s.ClickMenu(path...))
	})
}
