// Package config loads declarative application descriptions into element
// trees.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
)

var (
	// ErrUnknownApp is returned when no configuration resolves for an app id.
	ErrUnknownApp = errors.New("unknown application id")
	// ErrUnknownComponent is returned when a component fragment is missing.
	ErrUnknownComponent = errors.New("unknown component")
)

// Terminate is what happens to the application when a session ends.
type Terminate string

const (
	// TerminateQuit ends the WebDriver session, which closes the app.
	TerminateQuit Terminate = "quit"
	// TerminateKill also kills leftover processes of the executable,
	// before launch and after quit.
	TerminateKill Terminate = "kill"
	// TerminateAttach connects to an already running app and leaves it running.
	TerminateAttach Terminate = "attach"
)

func (t Terminate) String() string { return string(t) }

// ParseTerminate parses a termination policy. Empty selects TerminateQuit.
func ParseTerminate(s string) (Terminate, error) {
	switch t := Terminate(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TerminateQuit, nil
	case TerminateQuit, TerminateKill, TerminateAttach:
		return t, nil
	default:
		return "", fmt.Errorf("unknown termination policy %q (use quit, kill, or attach)", s)
	}
}

// Launch describes how the application under test is started.
type Launch struct {
	Path       string    `yaml:"path"                 json:"path"`
	Executable string    `yaml:"executable"           json:"executable"`
	Args       string    `yaml:"args,omitempty"       json:"args,omitempty"`
	WorkingDir string    `yaml:"working_dir,omitempty" json:"workingDirectory,omitempty"`
	Terminate  Terminate `yaml:"terminate"            json:"terminate"`
}

// DesktopConfig is the root configuration of one application.
type DesktopConfig struct {
	AppID         string
	Launch        Launch
	DefaultWait   time.Duration
	StartupWait   time.Duration
	XPathStrategy locator.Strategy
	Layout        model.Layout
	Tree          *model.Tree
}

// Default waits applied when the document leaves them unset.
const (
	DefaultWait = 2 * time.Second
	StartupWait = 5 * time.Second
)

// fileConfig is the JSON shape of the root document. The app object is
// walked separately so that child order is preserved.
type fileConfig struct {
	AppID           string `json:"appId"`
	Launch          Launch `json:"launch"`
	DefaultWaitMs   int    `json:"defaultWait"`
	StartupWaitMs   int    `json:"startupWait"`
	XPathStrategy   string `json:"xpathStrategy"`
	Layout          string `json:"layout"`
	LayoutTolerance int    `json:"layoutTolerance"`
}
