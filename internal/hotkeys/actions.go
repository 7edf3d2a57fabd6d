package hotkeys

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tagwm/internal/event"
	"github.com/1broseidon/tagwm/internal/keyboard"
	"github.com/1broseidon/tagwm/internal/model"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// Spawn starts command. A single string is split on whitespace.
func Spawn(command ...string) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		argv := command
		if len(argv) == 1 {
			argv = strings.Fields(argv[0])
		}
		if len(argv) == 0 {
			return fmt.Errorf("spawn: empty command")
		}
		ctx.Spawn(argv[0], argv[1:]...)
		return nil
	})
}

// CloseFocused asks the focused client to close.
func CloseFocused() keyboard.Handler {
	return withFocused(func(ctx *event.Context, _ *model.Tag, c *model.Client) error {
		ctx.Close(c.ID)
		return nil
	})
}

// FocusRelative cycles focus within the viewed tag.
func FocusRelative(delta int) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		ctx.FocusedTag().FocusRelative(delta)
		return nil
	})
}

// SwapMaster promotes the focused client to master.
func SwapMaster() keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		ctx.FocusedTag().SwapMaster()
		return nil
	})
}

// ViewTag switches the viewed tag.
func ViewTag(index int) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		return ctx.Screen().ViewTag(index)
	})
}

// ViewPreviousTag toggles back to the previously viewed tag.
func ViewPreviousTag() keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		return ctx.Screen().ViewPreviousTag()
	})
}

// MoveToTag moves the focused client to another tag on its screen.
func MoveToTag(index int) keyboard.Handler {
	return withFocused(func(ctx *event.Context, _ *model.Tag, c *model.Client) error {
		return ctx.Screen().MoveClient(c.ID, index)
	})
}

// FocusScreen moves input focus to another screen.
func FocusScreen(index int) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		if index < 0 || index >= ctx.ScreenCount() {
			return fmt.Errorf("screen %d out of range [0,%d)", index, ctx.ScreenCount())
		}
		ctx.FocusScreen(index)
		return nil
	})
}

// SendToScreen moves the focused client to another screen.
func SendToScreen(index int) keyboard.Handler {
	return withFocused(func(ctx *event.Context, _ *model.Tag, c *model.Client) error {
		if index < 0 || index >= ctx.ScreenCount() {
			return fmt.Errorf("screen %d out of range [0,%d)", index, ctx.ScreenCount())
		}
		if index == ctx.Screen().Index() {
			return nil
		}
		ctx.SendToScreen(c.ID, index)
		return nil
	})
}

// ToggleFloating flips the focused client between tiled and floating.
func ToggleFloating() keyboard.Handler {
	return withFocused(func(_ *event.Context, t *model.Tag, c *model.Client) error {
		c.Floating = !c.Floating
		t.ApplyLayout()
		return nil
	})
}

// ToggleFullscreen flips fullscreen for the focused client.
func ToggleFullscreen() keyboard.Handler {
	return withFocused(func(_ *event.Context, t *model.Tag, c *model.Client) error {
		t.SetFullscreen(c.ID, !c.Fullscreen)
		return nil
	})
}

// CycleLayout steps through names, starting from the tag's current layout.
func CycleLayout(names []string, delta int) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		return cycleLayout(ctx.FocusedTag(), names, delta)
	})
}

func cycleLayout(t *model.Tag, names []string, delta int) error {
	if len(names) == 0 {
		return fmt.Errorf("no layouts to cycle")
	}
	current := -1
	for i, n := range names {
		if n == t.Layout().Name() {
			current = i
			break
		}
	}
	next := 0
	if current >= 0 {
		next = ((current+delta)%len(names) + len(names)) % len(names)
	}
	l, err := tiling.Lookup(names[next])
	if err != nil {
		return err
	}
	t.SetLayout(l)
	return nil
}

// AdjustMasterRatio grows or shrinks the master column.
func AdjustMasterRatio(delta int) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		ctx.FocusedTag().AdjustMasterRatio(delta)
		return nil
	})
}

// AdjustMasterCount changes how many clients share the master column.
func AdjustMasterCount(delta int) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		ctx.FocusedTag().AdjustMasterCount(delta)
		return nil
	})
}

// Quit stops the window manager.
func Quit() keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		ctx.Quit()
		return nil
	})
}

func withFocused(fn func(ctx *event.Context, t *model.Tag, c *model.Client) error) keyboard.Handler {
	return keyboard.HandlerFunc(func(ctx *event.Context) error {
		t := ctx.FocusedTag()
		c, ok := t.FocusedClient()
		if !ok {
			return model.ErrNoFocusedClient
		}
		return fn(ctx, t, c)
	})
}
