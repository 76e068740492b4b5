package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
)

var fillCmd = &cobra.Command{
	Use:   "fill <container> <label> <value>",
	Short: "Set the input next to a text label",
	Long: `Find the text label inside a container and set the input the container's
layout places next to it: to the right for LeftToRight, below for TwoLines.

Examples:
  winium-desktop fill --app-id ledger Customer "Name" "Ada Lovelace"`,
	Args: cobra.ExactArgs(3),
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	return withSession(func(s *desktop.Session) error {
		container, err := lookup(s, desktop.SplitPath(args[0]))
		if err != nil {
			return err
		}
		return report(s.Fill(container.ID, args[1], args[2]))
	})
}
