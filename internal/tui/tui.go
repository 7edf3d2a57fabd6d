// Package tui is a live terminal view of the running window manager.
package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/tagwm/internal/wm"
)

// Source is what the viewer polls and drives. *ipc.Client implements it.
type Source interface {
	GetState() (*wm.State, error)
	ViewTag(screen, tag int) error
	FocusWindow(window uint32) error
	CloseWindow(window uint32) error
	SetLayout(screen int, layout string) error
	Reload() error
}

// refreshInterval is how often the state is re-read.
const refreshInterval = time.Second

// Run opens the viewer and blocks until the user quits.
func Run(src Source) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(src), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
