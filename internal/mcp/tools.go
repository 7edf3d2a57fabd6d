package mcp

import (
	"context"
	"fmt"
	"slices"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tagwm/internal/tiling"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	st, err := s.backend.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		FocusedScreen: st.FocusedScreen,
		ScreenCount:   st.ScreenCount,
		ClientCount:   st.ClientCount,
		ViewedTag:     st.ViewedTag,
		ActiveLayout:  st.ActiveLayout,
		UptimeSeconds: st.UptimeSeconds,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	state, err := s.backend.GetState()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	if args.Screen != nil && (*args.Screen < 0 || *args.Screen >= len(state.Screens)) {
		return nil, ListWindowsOutput{}, fmt.Errorf("screen %d out of range (have %d)", *args.Screen, len(state.Screens))
	}

	windows := make([]WindowInfo, 0)
	for _, scr := range state.Screens {
		if args.Screen != nil && scr.Index != *args.Screen {
			continue
		}
		for _, tag := range scr.Tags {
			for _, c := range tag.Clients {
				windows = append(windows, WindowInfo{
					Window:     c.Window,
					Name:       c.Name,
					Class:      c.Class,
					Screen:     scr.Index,
					Tag:        tag.Index,
					TagName:    tag.Name,
					Floating:   c.Floating,
					Fullscreen: c.Fullscreen,
					Focused:    c.Focused && tag.Viewed && scr.Index == state.FocusedScreen,
					Visible:    tag.Viewed,
				})
			}
		}
	}
	return nil, ListWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleGetState(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStateInput) (*mcpsdk.CallToolResult, GetStateOutput, error) {
	state, err := s.backend.GetState()
	if err != nil {
		return nil, GetStateOutput{}, err
	}
	return nil, GetStateOutput{FocusedScreen: state.FocusedScreen, Screens: state.Screens}, nil
}

func (s *Server) handleViewTag(_ context.Context, _ *mcpsdk.CallToolRequest, args ViewTagInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if args.Tag < 0 {
		return nil, ActionOutput{}, fmt.Errorf("tag must be >= 0, got %d", args.Tag)
	}
	if err := s.backend.ViewTag(args.Screen, args.Tag); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true, Message: fmt.Sprintf("screen %d now views tag %d", args.Screen, args.Tag)}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if args.Window == 0 {
		return nil, ActionOutput{}, fmt.Errorf("window is required")
	}
	if err := s.backend.FocusWindow(args.Window); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true, Message: fmt.Sprintf("focused window 0x%x", args.Window)}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if args.Window == 0 {
		return nil, ActionOutput{}, fmt.Errorf("window is required")
	}
	if err := s.backend.CloseWindow(args.Window); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true, Message: fmt.Sprintf("asked window 0x%x to close", args.Window)}, nil
}

func (s *Server) handleSetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SetLayoutInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if !slices.Contains(tiling.Names(), args.Layout) {
		return nil, ActionOutput{}, fmt.Errorf("unknown layout %q (available: %v)", args.Layout, tiling.Names())
	}
	if err := s.backend.SetLayout(args.Screen, args.Layout); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true, Message: fmt.Sprintf("screen %d uses layout %s", args.Screen, args.Layout)}, nil
}

func (s *Server) handleReload(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if err := s.backend.Reload(); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true, Message: "configuration reloaded"}, nil
}
