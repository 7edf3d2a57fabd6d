// Package mcp exposes the running window manager to MCP clients. Every tool
// is a thin wrapper over the IPC client.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tagwm/internal/ipc"
	"github.com/1broseidon/tagwm/internal/wm"
)

const (
	ServerName    = "tagwm"
	ServerVersion = "0.1.0"
)

// Backend is the window manager control surface the tools call.
// *ipc.Client implements it.
type Backend interface {
	GetStatus() (*ipc.StatusData, error)
	GetState() (*wm.State, error)
	ViewTag(screen, tag int) error
	FocusWindow(window uint32) error
	CloseWindow(window uint32) error
	SetLayout(screen int, layout string) error
	Reload() error
}

// Server is the MCP server for tagwm.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   Backend
}

// NewServer creates an MCP server talking to the window manager over IPC.
func NewServer() *Server {
	return NewServerWithBackend(ipc.NewClient())
}

// NewServerWithBackend creates an MCP server over an explicit backend.
func NewServerWithBackend(backend Backend) *Server {
	s := &Server{backend: backend}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Summarise the running window manager: focused screen, viewed tag, active layout and how many windows are managed.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List managed windows with their screen, tag, title, class and focus state. Optionally restrict to one screen.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_state",
		Description: "Return the full screen, tag and window state including geometry and layouts.",
	}, s.handleGetState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "view_tag",
		Description: "Switch a screen to another tag. Tags are zero-based.",
	}, s.handleViewTag)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Focus a window, switching its screen to the tag that holds it.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask a window to close. Windows supporting WM_DELETE_WINDOW are closed politely, others are killed.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_layout",
		Description: "Change the layout of the viewed tag on a screen.",
	}, s.handleSetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Reload the window manager configuration from disk. Keybindings keep their startup values.",
	}, s.handleReload)
}
