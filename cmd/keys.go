package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/winium-desktop/internal/desktop"
	"github.com/mj1618/winium-desktop/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys <target> <token...>",
	Short: "Type text and shortcuts into an element",
	Long: `Send keystrokes to the element at a label path. Each token is either a
shortcut in brackets ("[CTRL-S]", "[[ALT-F4]]") or literal text. Tokens are
joined into one key script; --script passes a script as is.

Examples:
  winium-desktop keys --app-id notepad Editor "Hello world" [ENTER] [CTRL-S]
  winium-desktop keys --app-id notepad Editor --script "<<Hi>>[[CTRL-A]]"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().String("script", "", "Raw key script")
}

// buildScript joins tokens into a key script.
func buildScript(tokens []string) string {
	script := ""
	for _, t := range tokens {
		script = keys.AddShortcut(script, t)
	}
	return script
}

func runKeys(cmd *cobra.Command, args []string) error {
	script, _ := cmd.Flags().GetString("script")
	if script == "" {
		script = buildScript(args[1:])
	}
	if script == "" {
		return fmt.Errorf("specify key tokens or --script")
	}
	return withSession(func(s *desktop.Session) error {
		target, err := lookup(s, desktop.SplitPath(args[0]))
		if err != nil {
			return err
		}
		log.Debugf("key script %q", script)
		return report(s.TypeKeys(target.ID, script))
	})
}
