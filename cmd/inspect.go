package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/output"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [label path]",
	Short: "Discover and print the element tree below a path",
	Long: `Resolve a label path below the application root, discover the children of
the element it names and print the subtree with labels and XPath locators.

Examples:
  winium-desktop inspect --app-id notepad
  winium-desktop inspect --app-id notepad "Menu > File"
  winium-desktop inspect --app-id ledger Login
  winium-desktop inspect --app-id ledger --find password`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("find", "", "Only print elements whose label or name contains this text")
}

func runInspect(cmd *cobra.Command, args []string) error {
	find, _ := cmd.Flags().GetString("find")
	return withSession(func(s *desktop.Session) error {
		e, flat, err := s.InspectPath(labelsFromArgs(args)...)
		if err != nil {
			return err
		}
		if find != "" {
			flat = keepMatches(flat, model.FindByText(s.Tree, e.ID, find))
		}
		return output.Print(output.InspectResult{
			App:      s.Config.AppID,
			Session:  s.ID,
			Target:   e.Label,
			Elements: flat,
		})
	})
}

// keepMatches filters flat down to the matched elements.
func keepMatches(flat []model.FlatElement, matches []*model.Element) []model.FlatElement {
	keep := make(map[model.ElementID]bool, len(matches))
	for _, m := range matches {
		keep[m.ID] = true
	}
	out := flat[:0]
	for _, el := range flat {
		if keep[el.ID] {
			out = append(out, el)
		}
	}
	return out
}
