package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/winium-desktop/internal/desktop"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/output"
)

var errNoApp = errors.New("no application: pass app or start the server with --app-id")

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// resultToTool converts an operation outcome. Failed results are tool
// errors so agents notice them.
func resultToTool(res desktop.Result, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !res.OK {
		return mcp.NewToolResultError(toText(res)), nil
	}
	return mcp.NewToolResultText(toText(res)), nil
}

// withSession runs fn on the session of the requested application while
// holding the call lock.
func (s *Server) withSession(request mcp.CallToolRequest, fn func(*desktop.Session, map[string]interface{}) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", s.cfg.DefaultApp)
	if app == "" {
		return mcp.NewToolResultError(errNoApp.Error()), nil
	}

	s.callMu.Lock()
	defer s.callMu.Unlock()

	sess, err := s.sessions.Get(app)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return fn(sess, params)
}

// lookupParam resolves the label path in params[key].
func lookupParam(sess *desktop.Session, params map[string]interface{}, key string) (*model.Element, error) {
	return sess.Lookup(desktop.SplitPath(stringParam(params, key, ""))...)
}

func (s *Server) handleInspect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		labels := desktop.SplitPath(stringParam(params, "path", ""))
		if boolParam(params, "refresh", false) {
			e, err := sess.Lookup(labels...)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := sess.Refresh(e.ID); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		e, flat, err := sess.InspectPath(labels...)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res := output.InspectResult{
			App:      sess.Config.AppID,
			Session:  sess.ID,
			Target:   e.Label,
			Elements: flat,
		}
		key := sess.Config.AppID + "\x00" + strings.Join(labels, "\x00")
		if prev, ok := s.last[key]; ok && boolParam(params, "changes", false) {
			res.Changes = model.Diff(prev, flat)
		}
		s.last[key] = flat
		return mcp.NewToolResultText(toText(res)), nil
	})
}

func (s *Server) handleMenuItems(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, _ map[string]interface{}) (*mcp.CallToolResult, error) {
		return resultToTool(sess.MenuItems())
	})
}

func (s *Server) handleClickMenu(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		path := desktop.SplitPath(stringParam(params, "path", ""))
		if len(path) == 0 {
			return mcp.NewToolResultError("path is required"), nil
		}
		return resultToTool(sess.ClickMenu(path...))
	})
}

func (s *Server) handleClickTab(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		group, err := lookupParam(sess, params, "group")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return resultToTool(sess.ClickTab(group.ID, stringParam(params, "tab", "")))
	})
}

func (s *Server) handleLogin(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		form, err := lookupParam(sess, params, "form")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return resultToTool(sess.Login(form.ID, stringParam(params, "username", ""), stringParam(params, "password", "")))
	})
}

func (s *Server) handleReadDialog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		dlg, err := lookupParam(sess, params, "dialog")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, d, err := sess.ShowDialog(dlg.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := output.DialogResult{OK: res.OK, Target: res.Target, Message: res.Message}
		if d != nil {
			out.Title, out.Body, out.Buttons = d.Title, d.Body, d.Buttons
		}
		if !res.OK {
			return mcp.NewToolResultError(toText(out)), nil
		}
		return mcp.NewToolResultText(toText(out)), nil
	})
}

func (s *Server) handleClickDialogButton(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		dlg, err := lookupParam(sess, params, "dialog")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return resultToTool(sess.ClickDialogButton(dlg.ID, stringParam(params, "button", "")))
	})
}

func (s *Server) handleKeys(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		target, err := lookupParam(sess, params, "target")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return resultToTool(sess.TypeKeys(target.ID, stringParam(params, "keys", "")))
	})
}

func (s *Server) handleFill(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		container, err := lookupParam(sess, params, "container")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return resultToTool(sess.Fill(container.ID, stringParam(params, "label", ""), stringParam(params, "value", "")))
	})
}

func (s *Server) handleScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *desktop.Session, params map[string]interface{}) (*mcp.CallToolResult, error) {
		e, err := lookupParam(sess, params, "path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, err := sess.Screenshot(e.ID, boolParam(params, "annotate", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultImage(
			fmt.Sprintf("screenshot of %s (%d bytes)", sess.Config.AppID, len(data)),
			base64.StdEncoding.EncodeToString(data),
			"image/png",
		), nil
	})
}

func (s *Server) handleClose(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := stringParam(request.GetArguments(), "app", s.cfg.DefaultApp)
	if app == "" {
		return mcp.NewToolResultError(errNoApp.Error()), nil
	}
	s.callMu.Lock()
	defer s.callMu.Unlock()

	closed, err := s.sessions.Close(app)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !closed {
		return mcp.NewToolResultText(fmt.Sprintf("no session open for %s", app)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("closed session for %s", app)), nil
}
