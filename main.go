package main

import (
	"github.com/mj1618/winium-desktop/cmd"

	_ "github.com/mj1618/winium-desktop/internal/platform/winium"
)

func main() {
	cmd.Execute()
}
