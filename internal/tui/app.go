package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/tiling"
	"github.com/1broseidon/tagwm/internal/wm"
)

type stateMsg struct {
	state *wm.State
	err   error
}

type tickMsg time.Time

type actionMsg struct {
	desc string
	err  error
}

// viewer is the root bubbletea model.
type viewer struct {
	src  Source
	keys keyMap
	help help.Model

	state     *wm.State
	connected bool
	lastErr   string
	message   string

	// screen is the selected screen, cursor the selected client row.
	screen int
	cursor int

	// configPath is the file the settings form edits, empty for the
	// default location. settings is non-nil while the form is open.
	configPath string
	settings   *settings

	width  int
	height int
}

func newModel(src Source) viewer {
	return viewer{src: src, keys: defaultKeyMap(), help: help.New()}
}

func (m viewer) fetch() tea.Cmd {
	return func() tea.Msg {
		st, err := m.src.GetState()
		return stateMsg{state: st, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// act runs a mutation. The resulting actionMsg triggers a refresh.
func (m viewer) act(desc string, fn func() error) tea.Cmd {
	return func() tea.Msg { return actionMsg{desc: desc, err: fn()} }
}

// Init implements tea.Model.
func (m viewer) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

// Update implements tea.Model.
func (m viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())

	case stateMsg:
		if msg.err != nil {
			m.connected = false
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.connected = true
		m.lastErr = ""
		m.state = msg.state
		m.clamp()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("%s failed: %v", msg.desc, msg.err)
		} else {
			m.message = msg.desc
		}
		return m, m.fetch()
	}

	if m.settings != nil {
		return m.updateSettings(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewer) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.settings = nil
		m.message = "settings unchanged"
		return m, nil
	}

	form, cmd := m.settings.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.settings.form = f
	}

	switch m.settings.form.State {
	case huh.StateCompleted:
		s := m.settings
		m.settings = nil
		return m, m.saveSettings(s)
	case huh.StateAborted:
		m.settings = nil
		return m, nil
	}
	return m, cmd
}

// saveSettings writes the edited config and asks the daemon to reload it.
func (m viewer) saveSettings(s *settings) tea.Cmd {
	return m.act("settings saved", func() error {
		if err := s.save(); err != nil {
			return err
		}
		return m.src.Reload()
	})
}

func (m viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextScreen):
		if n := m.screenCount(); n > 0 {
			m.screen = (m.screen + 1) % n
			m.cursor = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevScreen):
		if n := m.screenCount(); n > 0 {
			m.screen = (m.screen - 1 + n) % n
			m.cursor = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clamp()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clamp()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.act("configuration reloaded", m.src.Reload)
	case key.Matches(msg, m.keys.Settings):
		s, err := openSettings(m.configPath, m.width)
		if err != nil {
			m.message = fmt.Sprintf("settings: %v", err)
			return m, nil
		}
		m.settings = s
		return m, s.form.Init()
	case key.Matches(msg, m.keys.ViewTag):
		tag := int(msg.String()[0] - '1')
		screen := m.screen
		return m, m.act(fmt.Sprintf("viewing tag %d", tag+1), func() error { return m.src.ViewTag(screen, tag) })
	case key.Matches(msg, m.keys.Focus):
		if c, ok := m.selectedClient(); ok {
			win := c.Window
			return m, m.act(fmt.Sprintf("focused 0x%x", win), func() error { return m.src.FocusWindow(win) })
		}
	case key.Matches(msg, m.keys.Close):
		if c, ok := m.selectedClient(); ok {
			win := c.Window
			return m, m.act(fmt.Sprintf("closing 0x%x", win), func() error { return m.src.CloseWindow(win) })
		}
	case key.Matches(msg, m.keys.Layout):
		if tag, ok := m.viewedTag(); ok {
			next := nextLayout(tag.Layout)
			screen := m.screen
			return m, m.act("layout "+next, func() error { return m.src.SetLayout(screen, next) })
		}
	}
	return m, nil
}

func (m viewer) screenCount() int {
	if m.state == nil {
		return 0
	}
	return len(m.state.Screens)
}

func (m viewer) viewedTag() (model.TagSnapshot, bool) {
	if m.state == nil || m.screen >= len(m.state.Screens) {
		return model.TagSnapshot{}, false
	}
	for _, t := range m.state.Screens[m.screen].Tags {
		if t.Viewed {
			return t, true
		}
	}
	return model.TagSnapshot{}, false
}

func (m viewer) selectedClient() (model.ClientSnapshot, bool) {
	tag, ok := m.viewedTag()
	if !ok || m.cursor < 0 || m.cursor >= len(tag.Clients) {
		return model.ClientSnapshot{}, false
	}
	return tag.Clients[m.cursor], true
}

// clamp keeps the selection inside the current state.
func (m *viewer) clamp() {
	if n := m.screenCount(); m.screen >= n {
		m.screen = max(n-1, 0)
	}
	tag, _ := m.viewedTag()
	m.cursor = min(m.cursor, len(tag.Clients)-1)
	m.cursor = max(m.cursor, 0)
}

func nextLayout(current string) string {
	names := tiling.Names()
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}

// View implements tea.Model.
func (m viewer) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, m.state, m.lastErr, m.width)
	if m.settings != nil {
		body := m.settings.view(m.width, max(m.height-lipgloss.Height(statusBar), 1))
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, body)
	}
	helpBar := renderHelpBar(m.message, m.help.View(m.keys), m.width)

	var content string
	if m.state == nil || m.screen >= len(m.state.Screens) {
		content = renderPlaceholder("waiting for tagwm...", m.width, 1)
	} else {
		scr := m.state.Screens[m.screen]
		content = lipgloss.JoinVertical(lipgloss.Left,
			renderScreenBar(m.state, m.screen, m.width),
			renderTagBar(scr, m.width),
			renderClients(scr, m.cursor, m.width),
		)
	}

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(helpBar) + lipgloss.Height(content)
	pad := ""
	if gap := m.height - usedHeight; gap > 0 {
		pad = renderPlaceholder("", m.width, gap)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		pad,
		helpBar,
	)
}
