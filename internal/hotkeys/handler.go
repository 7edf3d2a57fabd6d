// Package hotkeys turns configured keybindings into keyboard handlers.
package hotkeys

import (
	"fmt"
	"strconv"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/keyboard"
)

// Build resolves every effective keybinding of cfg into a keyboard binding.
// Bindings keep their configured order.
func Build(cfg *config.Config) ([]keyboard.Keybinding, error) {
	kbs := cfg.EffectiveKeybindings()
	out := make([]keyboard.Keybinding, 0, len(kbs))
	for i, kb := range kbs {
		mods, key, err := keyboard.ParseChord(kb.Keys)
		if err != nil {
			return nil, fmt.Errorf("keybinding %d (%s): %w", i, kb.Keys, err)
		}
		h, err := handlerFor(cfg, kb)
		if err != nil {
			return nil, fmt.Errorf("keybinding %d (%s): %w", i, kb.Keys, err)
		}
		desc := kb.Description
		if desc == "" {
			desc = kb.Action
		}
		out = append(out, keyboard.Bind(mods, key).Group(kb.Group).Description(desc).Do(h))
	}
	return out, nil
}

func handlerFor(cfg *config.Config, kb config.Keybinding) (keyboard.Handler, error) {
	intArg := func(def int) (int, error) {
		if len(kb.Args) == 0 {
			return def, nil
		}
		n, err := strconv.Atoi(kb.Args[0])
		if err != nil {
			return 0, fmt.Errorf("%s: argument %q is not an integer", kb.Action, kb.Args[0])
		}
		return n, nil
	}

	switch kb.Action {
	case config.ActionSpawn:
		if len(kb.Args) == 0 {
			return nil, fmt.Errorf("spawn requires a command")
		}
		return Spawn(kb.Args...), nil
	case config.ActionTerminal:
		return Spawn(cfg.Terminal), nil
	case config.ActionLauncher:
		return Spawn(cfg.Launcher), nil
	case config.ActionClose:
		return CloseFocused(), nil
	case config.ActionFocusNext:
		return FocusRelative(1), nil
	case config.ActionFocusPrev:
		return FocusRelative(-1), nil
	case config.ActionSwapMaster:
		return SwapMaster(), nil
	case config.ActionViewPreviousTag:
		return ViewPreviousTag(), nil
	case config.ActionToggleFloating:
		return ToggleFloating(), nil
	case config.ActionToggleFullscreen:
		return ToggleFullscreen(), nil
	case config.ActionQuit:
		return Quit(), nil
	}

	n, err := intArg(1)
	if err != nil {
		return nil, err
	}
	switch kb.Action {
	case config.ActionViewTag:
		return ViewTag(n), nil
	case config.ActionMoveToTag:
		return MoveToTag(n), nil
	case config.ActionFocusScreen:
		return FocusScreen(n), nil
	case config.ActionSendToScreen:
		return SendToScreen(n), nil
	case config.ActionCycleLayout:
		return CycleLayout(layoutNames(cfg), n), nil
	case config.ActionMasterRatio:
		return AdjustMasterRatio(n), nil
	case config.ActionMasterCount:
		return AdjustMasterCount(n), nil
	}
	return nil, fmt.Errorf("unknown action %q", kb.Action)
}

func layoutNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Layout.Cycle))
	for _, m := range cfg.Layout.Cycle {
		names = append(names, string(m))
	}
	if len(names) == 0 {
		names = append(names, string(cfg.Layout.Default))
	}
	return names
}
