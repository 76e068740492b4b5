package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/winium-desktop/internal/config"
	"github.com/mj1618/winium-desktop/internal/desktop"
	"github.com/mj1618/winium-desktop/internal/output"
	pt "github.com/mj1618/winium-desktop/internal/platform/platformtest"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"inspect", "menu", "tab", "login", "dialog", "keys", "fill", "screenshot", "serve"}
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestFlagOrEnv(t *testing.T) {
	t.Setenv(envURL, "http://from-env:9999")
	if got := flagOrEnv(rootCmd, "url", envURL); got != "http://from-env:9999" {
		t.Errorf("env: got %q", got)
	}
	t.Setenv(envLogLevel, "")
	if got := flagOrEnv(rootCmd, "log-level", envLogLevel); got != "warning" {
		t.Errorf("default: got %q", got)
	}
}

func TestLabelsFromArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"File > Save As..."}, "File|Save As..."},
		{[]string{"File", "Save As..."}, "File|Save As..."},
		{[]string{"Recent", "a/b.txt"}, "Recent|a/b.txt"},
	}
	for _, tt := range tests {
		if got := strings.Join(labelsFromArgs(tt.args), "|"); got != tt.want {
			t.Errorf("labelsFromArgs(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestBuildScript(t *testing.T) {
	got := buildScript([]string{"Hello", " world", "[ENTER]", "[CTRL-S]"})
	if !strings.HasPrefix(got, "<<Hello world>>[[ENTER]]") || !strings.HasSuffix(got, "[[CTRL-S]]") {
		t.Errorf("script = %q", got)
	}
	if buildScript(nil) != "" {
		t.Error("no tokens should give an empty script")
	}
}

const editorDoc = `{"app": {"name": "Editor", "Menu": {"type": "MenuBar"},
	"Text": {"controlType": "Document", "automationId": "15"}}}`

type fakeDesktop struct {
	save, text *pt.Node
	driver     *pt.Driver
}

// useFakeDesktop routes sessions to an in-memory editor window and
// captures printed output.
func useFakeDesktop(t *testing.T) (*fakeDesktop, *bytes.Buffer) {
	t.Helper()
	f := &fakeDesktop{
		save: pt.New("MenuItem", "Save"),
		text: pt.New("Document", "").ID("15"),
	}
	file := pt.New("MenuItem", "File", pt.New("Menu", "File", f.save)).Menu()
	f.driver = pt.NewDriver(pt.New("Window", "Editor", pt.New("MenuBar", "Application", file), f.text))

	origSession, origOut := newSession, output.Stdout
	newSession = func(appID string) (*desktop.Session, error) {
		cfg, err := config.Parse([]byte(editorDoc), appID)
		if err != nil {
			return nil, err
		}
		return desktop.NewSession(cfg, f.driver, config.Source{}, nil)
	}
	var buf bytes.Buffer
	output.Stdout = &buf
	t.Cleanup(func() { newSession, output.Stdout = origSession, origOut })
	return f, &buf
}

func TestMenuCommand(t *testing.T) {
	f, buf := useFakeDesktop(t)
	rootCmd.SetArgs([]string{"menu", "--app-id", "editor", "File > Save"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if f.save.Clicks != 1 {
		t.Errorf("save clicks = %d", f.save.Clicks)
	}
	if !strings.Contains(buf.String(), "ok: true") {
		t.Errorf("output:\n%s", buf.String())
	}
	if f.driver.Quits != 1 {
		t.Errorf("session not closed, quits = %d", f.driver.Quits)
	}
}

func TestMenuCommand_FailureExitsNonZero(t *testing.T) {
	_, buf := useFakeDesktop(t)
	rootCmd.SetArgs([]string{"menu", "--app-id", "editor", "File", "Print"})
	err := rootCmd.Execute()
	if !errors.Is(err, errStepFailed) {
		t.Errorf("err = %v, want errStepFailed", err)
	}
	if !strings.Contains(buf.String(), "ok: false") {
		t.Errorf("failed result should still be printed:\n%s", buf.String())
	}
}

func TestKeysCommand(t *testing.T) {
	f, _ := useFakeDesktop(t)
	rootCmd.SetArgs([]string{"keys", "--app-id", "editor", "--format", "json", "Text", "hi"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if len(f.text.Keys) != 1 || f.text.Keys[0] != "hi" {
		t.Errorf("keys = %q", f.text.Keys)
	}
	output.OutputFormat = output.FormatYAML
}

func TestCommand_RequiresApp(t *testing.T) {
	useFakeDesktop(t)
	t.Setenv(envAppID, "")
	opts = settings{}
	if err := withSession(func(*desktop.Session) error { return nil }); err == nil {
		t.Error("expected error without an application id")
	}
}

func TestInspectCommand_Find(t *testing.T) {
	useFakeDesktop(t)
	var buf bytes.Buffer
	output.Stdout = &buf
	rootCmd.SetArgs([]string{"inspect", "--app-id", "editor", "--format", "yaml", "--find", "save", "Menu"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "label: Save") || strings.Contains(out, "label: File") {
		t.Errorf("output:\n%s", out)
	}
}
