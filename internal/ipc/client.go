package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/tagwm/internal/runtimepath"
	"github.com/1broseidon/tagwm/internal/wm"
)

// Client handles IPC communication with a running window manager
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to window manager: %w (is tagwm running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("window manager error: %s", resp.Error)
	}

	return &resp, nil
}

// send issues a command with an optional payload and ignores the data.
func (c *Client) send(cmd CommandType, payload interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	_, err := c.sendRequest(req)
	return err
}

// Reload asks the window manager to reload its configuration
func (c *Client) Reload() error {
	return c.send(CommandReload, nil)
}

// Quit stops the window manager
func (c *Client) Quit() error {
	return c.send(CommandQuit, nil)
}

// GetStatus retrieves a short status summary
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetState retrieves the full screen, tag and client state
func (c *Client) GetState() (*wm.State, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetState})
	if err != nil {
		return nil, err
	}

	var state wm.State
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state data: %w", err)
	}

	return &state, nil
}

// ViewTag switches the viewed tag of a screen
func (c *Client) ViewTag(screen, tag int) error {
	return c.send(CommandViewTag, ViewTagPayload{Screen: screen, Tag: tag})
}

// FocusWindow views the tag holding a window and focuses it
func (c *Client) FocusWindow(window uint32) error {
	return c.send(CommandFocusWindow, WindowPayload{Window: window})
}

// CloseWindow asks a managed window to close
func (c *Client) CloseWindow(window uint32) error {
	return c.send(CommandCloseWindow, WindowPayload{Window: window})
}

// SetLayout changes the layout of a screen's viewed tag
func (c *Client) SetLayout(screen int, layout string) error {
	return c.send(CommandSetLayout, SetLayoutPayload{Screen: screen, Layout: layout})
}

// Ping checks if the window manager is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
