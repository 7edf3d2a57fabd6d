package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/tiling"
	"github.com/1broseidon/tagwm/internal/wm"
)

type fakeSource struct {
	state *wm.State
	err   error
	calls []string
}

func (f *fakeSource) GetState() (*wm.State, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.state, nil
}

func (f *fakeSource) ViewTag(screen, tag int) error {
	f.calls = append(f.calls, "view")
	return f.err
}

func (f *fakeSource) FocusWindow(window uint32) error {
	f.calls = append(f.calls, "focus")
	return f.err
}

func (f *fakeSource) CloseWindow(window uint32) error {
	f.calls = append(f.calls, "close")
	return f.err
}

func (f *fakeSource) SetLayout(screen int, layout string) error {
	f.calls = append(f.calls, "layout:"+layout)
	return f.err
}

func (f *fakeSource) Reload() error {
	f.calls = append(f.calls, "reload")
	return f.err
}

func testState() *wm.State {
	return &wm.State{
		Screens: []model.ScreenSnapshot{
			{
				Index:    0,
				Name:     "DP-1",
				Bounds:   tiling.Rect{Width: 1920, Height: 1080},
				WorkArea: tiling.Rect{Width: 1920, Height: 1080},
				Viewed:   0,
				Tags: []model.TagSnapshot{
					{Index: 0, Name: "1", Layout: tiling.LayoutMasterStack, Viewed: true, Focused: 2, Clients: []model.ClientSnapshot{
						{Window: 1, Class: "xterm", Controlled: true},
						{Window: 2, Class: "firefox", Controlled: true, Focused: true},
					}},
					{Index: 1, Name: "2", Layout: tiling.LayoutMasterStack},
				},
			},
			{
				Index:  1,
				Name:   "HDMI-1",
				Viewed: 0,
				Tags:   []model.TagSnapshot{{Index: 0, Name: "1", Layout: tiling.LayoutAuto, Viewed: true}},
			},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a viewer that has received one state refresh.
func loaded(t *testing.T, src *fakeSource) viewer {
	t.Helper()
	m := newModel(src)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.Update(m.fetch()())
	v := next.(viewer)
	if !v.connected {
		t.Fatalf("expected connected viewer")
	}
	return v
}

func press(t *testing.T, m viewer, msg tea.KeyMsg) (viewer, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(viewer), cmd
}

func TestUpdate_StateErrorMarksDisconnected(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	m := newModel(src)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	next, _ = next.Update(m.fetch()())
	v := next.(viewer)

	if v.connected || v.lastErr != "connection refused" {
		t.Fatalf("unexpected viewer state: connected=%v err=%q", v.connected, v.lastErr)
	}
	if out := v.View(); !strings.Contains(out, "not running") {
		t.Fatalf("expected not running banner, got:\n%s", out)
	}
}

func TestUpdate_CursorClampsToClients(t *testing.T) {
	m := loaded(t, &fakeSource{state: testState()})

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, runes("j"))
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestUpdate_TabCyclesScreens(t *testing.T) {
	m := loaded(t, &fakeSource{state: testState()})
	m.cursor = 1

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != 1 || m.cursor != 0 {
		t.Fatalf("screen=%d cursor=%d after tab", m.screen, m.cursor)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != 0 {
		t.Fatalf("expected wrap to screen 0, got %d", m.screen)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.screen != 1 {
		t.Fatalf("expected shift+tab to wrap to screen 1, got %d", m.screen)
	}
}

func TestUpdate_ActionsCallSource(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want string
	}{
		{"view tag", runes("2"), "view"},
		{"focus", tea.KeyMsg{Type: tea.KeyEnter}, "focus"},
		{"close", runes("x"), "close"},
		{"layout", runes("l"), "layout:vertical"},
		{"reload", runes("r"), "reload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{state: testState()}
			m := loaded(t, src)

			m, cmd := press(t, m, tt.key)
			if cmd == nil {
				t.Fatalf("expected a command")
			}
			msg := cmd()
			if len(src.calls) != 1 || src.calls[0] != tt.want {
				t.Fatalf("calls = %v, want [%s]", src.calls, tt.want)
			}

			next, refresh := m.Update(msg)
			if refresh == nil {
				t.Fatalf("expected a refresh after the action")
			}
			if next.(viewer).message == "" {
				t.Fatalf("expected an action message")
			}
		})
	}
}

func TestUpdate_ActionFailureIsShown(t *testing.T) {
	m := newModel(&fakeSource{})
	next, _ := m.Update(actionMsg{desc: "viewing tag 3", err: errors.New("invalid tag index")})
	v := next.(viewer)
	if !strings.Contains(v.message, "failed") || !strings.Contains(v.message, "invalid tag index") {
		t.Fatalf("unexpected message %q", v.message)
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := loaded(t, &fakeSource{state: testState()})
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := press(t, m, key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg for %q", key.String())
		}
	}
}

func TestView_ShowsTagsAndClients(t *testing.T) {
	m := loaded(t, &fakeSource{state: testState()})
	out := m.View()

	for _, want := range []string{"DP-1", "HDMI-1", "xterm", "firefox", "master-stack", "focused"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestNextLayout(t *testing.T) {
	names := tiling.Names()
	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := nextLayout(name); got != want {
			t.Errorf("nextLayout(%q) = %q, want %q", name, got, want)
		}
	}
	if got := nextLayout("unknown"); got != names[0] {
		t.Errorf("nextLayout(unknown) = %q, want %q", got, names[0])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"firefox", 10, "firefox"},
		{"firefox", 4, "fir…"},
		{"firefox", 1, "…"},
		{"firefox", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
