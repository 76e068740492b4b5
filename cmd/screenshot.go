package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot [label path]",
	Short: "Capture a screenshot",
	Long: `Capture the screen through the Winium endpoint. With --annotate the bounds
of the element at the label path and its modeled descendants are outlined
and labeled.

Examples:
  winium-desktop screenshot --app-id notepad --output shot.png
  winium-desktop screenshot --app-id notepad Menu --annotate --output menu.png`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().Bool("annotate", false, "Outline and label element bounds")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	annotate, _ := cmd.Flags().GetBool("annotate")
	return withSession(func(s *desktop.Session) error {
		e, err := lookup(s, labelsFromArgs(args))
		if err != nil {
			return err
		}
		data, err := s.Screenshot(e.ID, annotate)
		if err != nil {
			return err
		}
		if path == "" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(data))
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Screenshot saved to %s (%d bytes)\n", path, len(data))
		return nil
	})
}
