package mcp

import "github.com/1broseidon/tagwm/internal/model"

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	FocusedScreen int    `json:"focused_screen"`
	ScreenCount   int    `json:"screen_count"`
	ClientCount   int    `json:"client_count"`
	ViewedTag     string `json:"viewed_tag"`
	ActiveLayout  string `json:"active_layout"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Screen *int `json:"screen,omitempty" jsonschema:"Only list windows on this screen index (default: all screens)"`
}

// WindowInfo describes a single managed window.
type WindowInfo struct {
	Window     uint32 `json:"window"`
	Name       string `json:"name,omitempty"`
	Class      string `json:"class,omitempty"`
	Screen     int    `json:"screen"`
	Tag        int    `json:"tag"`
	TagName    string `json:"tag_name"`
	Floating   bool   `json:"floating"`
	Fullscreen bool   `json:"fullscreen"`
	Focused    bool   `json:"focused"`
	Visible    bool   `json:"visible"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// GetStateInput is the input for the get_state tool.
type GetStateInput struct{}

// GetStateOutput is the output for the get_state tool.
type GetStateOutput struct {
	FocusedScreen int                    `json:"focused_screen"`
	Screens       []model.ScreenSnapshot `json:"screens"`
}

// ViewTagInput is the input for the view_tag tool.
type ViewTagInput struct {
	Screen int `json:"screen,omitempty" jsonschema:"Screen index (default: 0)"`
	Tag    int `json:"tag" jsonschema:"Zero-based tag index to view"`
}

// WindowInput is the input for the focus_window and close_window tools.
type WindowInput struct {
	Window uint32 `json:"window" jsonschema:"Window id as reported by list_windows"`
}

// SetLayoutInput is the input for the set_layout tool.
type SetLayoutInput struct {
	Screen int    `json:"screen,omitempty" jsonschema:"Screen index (default: 0)"`
	Layout string `json:"layout" jsonschema:"Layout name: master-stack, auto, vertical or horizontal"`
}

// ReloadInput is the input for the reload_config tool.
type ReloadInput struct{}

// ActionOutput is returned by tools that change window manager state.
type ActionOutput struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
