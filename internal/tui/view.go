package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/wm"
)

var (
	viewedTagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	occupiedTagStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("238")).
				Padding(0, 1)

	emptyTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().Reverse(true)
	focusedRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

func renderStatusBar(connected bool, st *wm.State, lastErr string, width int) string {
	var status string
	if connected && st != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		clients := 0
		for _, scr := range st.Screens {
			for _, t := range scr.Tags {
				clients += len(t.Clients)
			}
		}
		status = fmt.Sprintf("%s tagwm  screens:%d  windows:%d  up:%s",
			dot, len(st.Screens), clients, st.Uptime.Truncate(time.Second))
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " tagwm not running"
		if lastErr != "" {
			status += "  " + dimStyle.Render(lastErr)
		}
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

func renderScreenBar(st *wm.State, selected, width int) string {
	parts := make([]string, 0, len(st.Screens))
	for _, scr := range st.Screens {
		label := fmt.Sprintf("%d:%s %dx%d", scr.Index, scr.Name, scr.Bounds.Width, scr.Bounds.Height)
		if scr.Index == st.FocusedScreen {
			label += " *"
		}
		if scr.Index == selected {
			parts = append(parts, viewedTagStyle.Render(label))
		} else {
			parts = append(parts, emptyTagStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func renderTagBar(scr model.ScreenSnapshot, width int) string {
	parts := make([]string, 0, len(scr.Tags))
	for _, t := range scr.Tags {
		label := t.Name
		switch {
		case t.Viewed:
			parts = append(parts, viewedTagStyle.Render(label))
		case len(t.Clients) > 0:
			parts = append(parts, occupiedTagStyle.Render(label))
		default:
			parts = append(parts, emptyTagStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return sectionStyle.Width(width).Render(bar)
}

func renderClients(scr model.ScreenSnapshot, cursor, width int) string {
	var viewed model.TagSnapshot
	for _, t := range scr.Tags {
		if t.Viewed {
			viewed = t
		}
	}

	var sb strings.Builder
	sb.WriteString(dimStyle.Render(fmt.Sprintf("layout %s  work area %dx%d+%d+%d",
		viewed.Layout, scr.WorkArea.Width, scr.WorkArea.Height, scr.WorkArea.X, scr.WorkArea.Y)))
	sb.WriteString("\n\n")

	if len(viewed.Clients) == 0 {
		sb.WriteString(dimStyle.Render("no windows on this tag"))
		return sectionStyle.Width(width).Render(sb.String())
	}

	for i, c := range viewed.Clients {
		row := clientRow(c, width)
		switch {
		case i == cursor:
			row = selectedRowStyle.Render(row)
		case c.Focused:
			row = focusedRowStyle.Render(row)
		}
		sb.WriteString(row)
		if i < len(viewed.Clients)-1 {
			sb.WriteString("\n")
		}
	}
	return sectionStyle.Width(width).Render(sb.String())
}

func clientRow(c model.ClientSnapshot, width int) string {
	var flags []string
	if c.Focused {
		flags = append(flags, "focused")
	}
	if c.Floating {
		flags = append(flags, "floating")
	}
	if c.Fullscreen {
		flags = append(flags, "fullscreen")
	}
	if !c.Controlled {
		flags = append(flags, "ignored")
	}
	name := c.Name
	if name == "" {
		name = c.Class
	}
	row := fmt.Sprintf("0x%08x  %-12s %-30s %4dx%-4d %s",
		c.Window, truncate(c.Class, 12), truncate(name, 30), c.Geometry.Width, c.Geometry.Height, strings.Join(flags, ","))
	return truncate(row, width)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func renderHelpBar(message, keys string, width int) string {
	line := keys
	if message != "" {
		line = message + "  │  " + keys
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(line)
}

func renderPlaceholder(text string, width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241"))
	return style.Render(text)
}
