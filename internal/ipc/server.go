package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/runtimepath"
	"github.com/1broseidon/tagwm/internal/wm"
)

// Controller is the part of the window manager the server drives. Reads
// come from Snapshot; everything else is posted to the event loop.
type Controller interface {
	Snapshot() wm.State
	ViewTag(ctx context.Context, screen, tag int) error
	FocusWindow(ctx context.Context, id platform.WindowID) error
	CloseWindow(ctx context.Context, id platform.WindowID) error
	SetLayout(ctx context.Context, screen int, name string) error
	Reload(ctx context.Context, cfg *config.Config) error
	Shutdown(ctx context.Context) error
}

// requestTimeout bounds how long a command may wait for the event loop.
const requestTimeout = 5 * time.Second

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctl          Controller
	logger       *slog.Logger
	loadConfig   func() (*config.Config, error)
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server
func NewServer(ctl Controller, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		ctl:        ctl,
		logger:     logger,
		loadConfig: config.Load,
	}, nil
}

// SocketPath is where the server listens.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Debug("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal IPC response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Debug("failed to send IPC response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch req.Command {
	case CommandReload:
		return s.handleReload(ctx)
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetState:
		return ok(s.ctl.Snapshot())
	case CommandViewTag:
		var p ViewTagPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid view payload: %v", err))
		}
		return result(s.ctl.ViewTag(ctx, p.Screen, p.Tag))
	case CommandFocusWindow:
		var p WindowPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid focus payload: %v", err))
		}
		return result(s.ctl.FocusWindow(ctx, platform.WindowID(p.Window)))
	case CommandCloseWindow:
		var p WindowPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid close payload: %v", err))
		}
		return result(s.ctl.CloseWindow(ctx, platform.WindowID(p.Window)))
	case CommandSetLayout:
		var p SetLayoutPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid layout payload: %v", err))
		}
		if p.Layout == "" {
			return NewErrorResponse("layout is required")
		}
		return result(s.ctl.SetLayout(ctx, p.Screen, p.Layout))
	case CommandQuit:
		s.logger.Info("IPC: quit requested")
		return result(s.ctl.Shutdown(ctx))
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration from disk and applies it
func (s *Server) handleReload(ctx context.Context) *Response {
	s.logger.Info("IPC: reload requested")

	newCfg, err := s.loadConfig()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	if err := s.ctl.Reload(ctx, newCfg); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply config: %v", err))
	}
	return ok(nil)
}

// handleGetStatus summarises the focused screen
func (s *Server) handleGetStatus() *Response {
	st := s.ctl.Snapshot()
	status := StatusData{
		FocusedScreen: st.FocusedScreen,
		ScreenCount:   len(st.Screens),
		UptimeSeconds: int64(st.Uptime.Seconds()),
		Running:       true,
	}
	for _, scr := range st.Screens {
		for _, tag := range scr.Tags {
			status.ClientCount += len(tag.Clients)
			if scr.Index == st.FocusedScreen && tag.Viewed {
				status.ViewedTag = tag.Name
				status.ActiveLayout = tag.Layout
			}
		}
	}
	return ok(status)
}

func ok(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func result(err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(nil)
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}
