package server

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/winium-desktop/internal/config"
	"github.com/mj1618/winium-desktop/internal/desktop"
	pt "github.com/mj1618/winium-desktop/internal/platform/platformtest"
)

const editorDoc = `{"app": {"name": "Editor", "Menu": {"type": "MenuBar"},
	"Text": {"controlType": "Document", "automationId": "15"}}}`

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	srv    *Server
	opens  int
	win    *pt.Node
	driver *pt.Driver
	save   *pt.Node
	text   *pt.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		save: pt.New("MenuItem", "Save"),
		text: pt.New("Document", "").ID("15"),
	}
	file := pt.New("MenuItem", "File", pt.New("Menu", "File", f.save)).Menu()
	f.win = pt.New("Window", "Editor",
		pt.New("MenuBar", "Application", file),
		f.text,
	)
	f.driver = pt.NewDriver(f.win)
	open := func(appID string) (*desktop.Session, error) {
		if appID != "editor" {
			return nil, config.ErrUnknownApp
		}
		f.opens++
		cfg, err := config.Parse([]byte(editorDoc), appID)
		if err != nil {
			return nil, err
		}
		return desktop.NewSession(cfg, f.driver, config.Source{}, nil)
	}
	f.srv = New(Config{DefaultApp: "editor"}, open, quietLog())
	return f
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	var text []string
	for _, c := range res.Content {
		switch c := c.(type) {
		case mcp.TextContent:
			text = append(text, c.Text)
		case *mcp.TextContent:
			text = append(text, c.Text)
		}
	}
	return strings.Join(text, "\n"), res.IsError
}

func TestClickMenu(t *testing.T) {
	f := newFixture(t)
	text, isErr := call(t, f.srv.handleClickMenu, map[string]interface{}{"path": "File > Save"})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	if f.save.Clicks != 1 || !strings.Contains(text, "ok: true") {
		t.Errorf("clicks = %d, text:\n%s", f.save.Clicks, text)
	}

	text, isErr = call(t, f.srv.handleClickMenu, map[string]interface{}{"path": "File > Print"})
	if !isErr || !strings.Contains(text, "ok: false") {
		t.Errorf("missing item should be a tool error:\n%s", text)
	}

	if f.opens != 1 {
		t.Errorf("opens = %d, want the session reused", f.opens)
	}
}

func TestClickMenu_RequiresPath(t *testing.T) {
	f := newFixture(t)
	if _, isErr := call(t, f.srv.handleClickMenu, map[string]interface{}{"path": " > "}); !isErr {
		t.Error("blank path should be an error")
	}
}

func TestInspect(t *testing.T) {
	f := newFixture(t)
	text, isErr := call(t, f.srv.handleInspect, map[string]interface{}{"path": "Menu"})
	if isErr {
		t.Fatal(text)
	}
	for _, want := range []string{"app: editor", "target: Menu", "Menu > File > Save"} {
		if !strings.Contains(text, want) {
			t.Errorf("inspect output missing %q:\n%s", want, text)
		}
	}
}

func TestInspect_Changes(t *testing.T) {
	f := newFixture(t)
	if text, isErr := call(t, f.srv.handleInspect, map[string]interface{}{"changes": true}); isErr || strings.Contains(text, "changes:") {
		t.Fatalf("first inspect has nothing to compare with:\n%s", text)
	}

	f.win.Add(pt.New("Text", "Ready"))
	text, isErr := call(t, f.srv.handleInspect, map[string]interface{}{"changes": true, "refresh": true})
	if isErr {
		t.Fatal(text)
	}
	if !strings.Contains(text, "type: added") || !strings.Contains(text, "label: Ready") {
		t.Errorf("new element not reported:\n%s", text)
	}
}

func TestKeys(t *testing.T) {
	f := newFixture(t)
	if text, isErr := call(t, f.srv.handleKeys, map[string]interface{}{"target": "Text", "keys": "<<hello>>"}); isErr {
		t.Fatal(text)
	}
	if len(f.text.Keys) != 1 || f.text.Keys[0] != "hello" {
		t.Errorf("keys = %q", f.text.Keys)
	}
}

func TestUnknownAppAndElement(t *testing.T) {
	f := newFixture(t)
	text, isErr := call(t, f.srv.handleKeys, map[string]interface{}{"app": "nope", "target": "Text", "keys": "x"})
	if !isErr || !strings.Contains(text, config.ErrUnknownApp.Error()) {
		t.Errorf("unknown app: %s", text)
	}

	text, isErr = call(t, f.srv.handleKeys, map[string]interface{}{"target": "Missing", "keys": "x"})
	if !isErr || !strings.Contains(text, "Missing") {
		t.Errorf("unknown element: %s", text)
	}

	f.srv.cfg.DefaultApp = ""
	if text, isErr := call(t, f.srv.handleMenuItems, nil); !isErr || text != errNoApp.Error() {
		t.Errorf("no app: %s", text)
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	if text, _ := call(t, f.srv.handleClose, nil); !strings.Contains(text, "no session") {
		t.Errorf("close before open: %s", text)
	}
	call(t, f.srv.handleMenuItems, nil)
	if text, _ := call(t, f.srv.handleClose, nil); !strings.Contains(text, "closed") {
		t.Errorf("close: %s", text)
	}
	if f.driver.Quits != 1 {
		t.Errorf("quits = %d, want 1", f.driver.Quits)
	}
	call(t, f.srv.handleMenuItems, nil)
	if f.opens != 2 {
		t.Errorf("opens = %d, want a new session after close", f.opens)
	}
}

func TestScreenshot(t *testing.T) {
	f := newFixture(t)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"annotate": true}
	res, err := f.srv.handleScreenshot(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError || len(res.Content) != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestSessionCache_ExpiresIdleSessions(t *testing.T) {
	drivers := []*pt.Driver{}
	open := func(appID string) (*desktop.Session, error) {
		cfg, err := config.Parse([]byte(editorDoc), appID)
		if err != nil {
			return nil, err
		}
		d := pt.NewDriver()
		drivers = append(drivers, d)
		return desktop.NewSession(cfg, d, config.Source{}, nil)
	}
	c := NewSessionCache(open, time.Minute, quietLog())
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.Get("editor")
	if err != nil {
		t.Fatal(err)
	}
	now = now.Add(30 * time.Second)
	if again, _ := c.Get("editor"); again != first {
		t.Error("session within ttl should be reused")
	}
	now = now.Add(2 * time.Minute)
	if again, _ := c.Get("editor"); again == first {
		t.Error("idle session should be replaced")
	}
	if drivers[0].Quits != 1 {
		t.Errorf("expired session quits = %d, want 1", drivers[0].Quits)
	}

	c.CloseAll()
	if drivers[1].Quits != 1 {
		t.Error("CloseAll should close open sessions")
	}
}

func TestSessionCache_OpenError(t *testing.T) {
	boom := errors.New("endpoint down")
	c := NewSessionCache(func(string) (*desktop.Session, error) { return nil, boom }, 0, quietLog())
	if _, err := c.Get("editor"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
