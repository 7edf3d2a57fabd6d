package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetState    CommandType = "GET_STATE"
	CommandViewTag     CommandType = "VIEW_TAG"
	CommandFocusWindow CommandType = "FOCUS_WINDOW"
	CommandCloseWindow CommandType = "CLOSE_WINDOW"
	CommandSetLayout   CommandType = "SET_LAYOUT"
	CommandQuit        CommandType = "QUIT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	FocusedScreen int    `json:"focused_screen"`
	ScreenCount   int    `json:"screen_count"`
	ClientCount   int    `json:"client_count"`
	ViewedTag     string `json:"viewed_tag"`
	ActiveLayout  string `json:"active_layout"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Running       bool   `json:"running"`
}

// ViewTagPayload represents the payload for VIEW_TAG
type ViewTagPayload struct {
	Screen int `json:"screen"`
	Tag    int `json:"tag"`
}

// WindowPayload represents the payload for FOCUS_WINDOW and CLOSE_WINDOW
type WindowPayload struct {
	Window uint32 `json:"window"`
}

// SetLayoutPayload represents the payload for SET_LAYOUT
type SetLayoutPayload struct {
	Screen int    `json:"screen"`
	Layout string `json:"layout"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
