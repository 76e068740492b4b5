// Package server exposes desktop sessions as Model Context Protocol tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	// DefaultApp is used by tool calls that do not name an application.
	DefaultApp string
	// IdleTTL closes sessions unused for this long (0 keeps them open).
	IdleTTL time.Duration
}

// Server serves desktop automation tools. Tool calls run one at a time:
// a session drives a single live UI and is not safe for concurrent use.
type Server struct {
	cfg      Config
	sessions *SessionCache
	log      logrus.FieldLogger

	callMu sync.Mutex
	// last holds the previous inspect listing per application and path.
	last map[string][]model.FlatElement
	mcp  *mcpserver.MCPServer
}

// New creates a server whose sessions are started by open.
func New(cfg Config, open Opener, log logrus.FieldLogger) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: NewSessionCache(open, cfg.IdleTTL, log),
		log:      log,
		last:     make(map[string][]model.FlatElement),
	}
	s.mcp = mcpserver.NewMCPServer("winium-desktop", version.Version)
	s.registerTools()
	return s
}

// Serve starts the server on the configured transport and closes all
// sessions when it returns.
func (s *Server) Serve() error {
	defer s.sessions.CloseAll()
	switch s.cfg.Transport {
	case "stdio", "":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func appParam() mcp.ToolOption {
	return mcp.WithString("app", mcp.Description("Application id (defaults to the server's --app-id)"))
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("inspect",
			mcp.WithDescription("Discover the children of a modeled element and return its subtree with labels and XPath locators"),
			appParam(),
			mcp.WithString("path", mcp.Description("Label path below the application root, e.g. 'Menu > File' (empty = root)")),
			mcp.WithBoolean("refresh", mcp.Description("Forget bound controls and scan again, after the UI changed")),
			mcp.WithBoolean("changes", mcp.Description("Also report what changed since the previous inspect of this path")),
		),
		s.handleInspect,
	)

	s.mcp.AddTool(
		mcp.NewTool("menu_items",
			mcp.WithDescription("List every menu path of the application's menu bar"),
			appParam(),
		),
		s.handleMenuItems,
	)

	s.mcp.AddTool(
		mcp.NewTool("click_menu",
			mcp.WithDescription("Open a menu path and click its last item, e.g. 'File > Save As'"),
			appParam(),
			mcp.WithString("path", mcp.Description("Menu path, items separated by '>'"), mcp.Required()),
		),
		s.handleClickMenu,
	)

	s.mcp.AddTool(
		mcp.NewTool("click_tab",
			mcp.WithDescription("Select a tab of a tab group"),
			appParam(),
			mcp.WithString("group", mcp.Description("Label path of the tab group"), mcp.Required()),
			mcp.WithString("tab", mcp.Description("Tab name"), mcp.Required()),
		),
		s.handleClickTab,
	)

	s.mcp.AddTool(
		mcp.NewTool("login",
			mcp.WithDescription("Fill and submit a login form; succeeds without action when the form does not appear"),
			appParam(),
			mcp.WithString("form", mcp.Description("Label path of the login form"), mcp.Required()),
			mcp.WithString("username", mcp.Description("User name"), mcp.Required()),
			mcp.WithString("password", mcp.Description("Password"), mcp.Required()),
		),
		s.handleLogin,
	)

	s.mcp.AddTool(
		mcp.NewTool("read_dialog",
			mcp.WithDescription("Read the title, body text and buttons of a dialog"),
			appParam(),
			mcp.WithString("dialog", mcp.Description("Label path of the dialog"), mcp.Required()),
		),
		s.handleReadDialog,
	)

	s.mcp.AddTool(
		mcp.NewTool("click_dialog_button",
			mcp.WithDescription("Click a dialog button by name"),
			appParam(),
			mcp.WithString("dialog", mcp.Description("Label path of the dialog"), mcp.Required()),
			mcp.WithString("button", mcp.Description("Button name"), mcp.Required()),
		),
		s.handleClickDialogButton,
	)

	s.mcp.AddTool(
		mcp.NewTool("keys",
			mcp.WithDescription("Send a key script to an element: <<literal text>> and [[CTRL-S]] shortcuts"),
			appParam(),
			mcp.WithString("target", mcp.Description("Label path of the element to type into"), mcp.Required()),
			mcp.WithString("keys", mcp.Description("Key script"), mcp.Required()),
		),
		s.handleKeys,
	)

	s.mcp.AddTool(
		mcp.NewTool("fill",
			mcp.WithDescription("Set the input next to a text label inside a container"),
			appParam(),
			mcp.WithString("container", mcp.Description("Label path of the container"), mcp.Required()),
			mcp.WithString("label", mcp.Description("Visible label of the input"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Value to set"), mcp.Required()),
		),
		s.handleFill,
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the screen, optionally outlining the modeled elements below a path"),
			appParam(),
			mcp.WithString("path", mcp.Description("Label path to annotate (empty = root)")),
			mcp.WithBoolean("annotate", mcp.Description("Outline and label element bounds")),
		),
		s.handleScreenshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("close",
			mcp.WithDescription("End the application's session and apply its termination policy"),
			appParam(),
		),
		s.handleClose,
	)
}
