package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
	"github.com/mj1618/winium-desktop/internal/output"
)

var dialogCmd = &cobra.Command{
	Use:   "dialog <dialog>",
	Short: "Read a dialog or click one of its buttons",
	Long: `Print the title, body text and buttons of the dialog at a label path, or
click a button with --click.

Examples:
  winium-desktop dialog --app-id notepad SaveAs
  winium-desktop dialog --app-id editor Confirm --click No`,
	Args: cobra.ExactArgs(1),
	RunE: runDialog,
}

func init() {
	rootCmd.AddCommand(dialogCmd)
	dialogCmd.Flags().String("click", "", "Click the button with this name")
}

func runDialog(cmd *cobra.Command, args []string) error {
	button, _ := cmd.Flags().GetString("click")
	return withSession(func(s *desktop.Session) error {
		dlg, err := lookup(s, desktop.SplitPath(args[0]))
		if err != nil {
			return err
		}
		if button != "" {
			return report(s.ClickDialogButton(dlg.ID, button))
		}

		res, d, err := s.ShowDialog(dlg.ID)
		if err != nil {
			return err
		}
		if !res.OK {
			return report(res, nil)
		}
		return output.Print(output.DialogResult{
			OK:      true,
			Target:  res.Target,
			Title:   d.Title,
			Body:    d.Body,
			Buttons: d.Buttons,
		})
	})
}
