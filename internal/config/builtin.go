package config

import (
	"fmt"
	"sort"
	"strconv"
)

// Built-in action names usable in keybindings.
const (
	ActionSpawn            = "spawn"
	ActionTerminal         = "terminal"
	ActionLauncher         = "launcher"
	ActionClose            = "close"
	ActionFocusNext        = "focus-next"
	ActionFocusPrev        = "focus-prev"
	ActionSwapMaster       = "swap-master"
	ActionViewTag          = "view-tag"
	ActionViewPreviousTag  = "view-previous-tag"
	ActionMoveToTag        = "move-to-tag"
	ActionFocusScreen      = "focus-screen"
	ActionSendToScreen     = "send-to-screen"
	ActionToggleFloating   = "toggle-floating"
	ActionToggleFullscreen = "toggle-fullscreen"
	ActionCycleLayout      = "cycle-layout"
	ActionMasterRatio      = "master-ratio"
	ActionMasterCount      = "master-count"
	ActionQuit             = "quit"
)

type actionRule struct {
	minArgs int
	tagArg  bool
	intArg  bool
}

var actionRules = map[string]actionRule{
	ActionSpawn:            {minArgs: 1},
	ActionTerminal:         {},
	ActionLauncher:         {},
	ActionClose:            {},
	ActionFocusNext:        {},
	ActionFocusPrev:        {},
	ActionSwapMaster:       {},
	ActionViewTag:          {minArgs: 1, tagArg: true},
	ActionViewPreviousTag:  {},
	ActionMoveToTag:        {minArgs: 1, tagArg: true},
	ActionFocusScreen:      {minArgs: 1, intArg: true},
	ActionSendToScreen:     {minArgs: 1, intArg: true},
	ActionToggleFloating:   {},
	ActionToggleFullscreen: {},
	ActionCycleLayout:      {intArg: true},
	ActionMasterRatio:      {minArgs: 1, intArg: true},
	ActionMasterCount:      {minArgs: 1, intArg: true},
	ActionQuit:             {},
}

// ActionNames lists the built-in actions, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(actionRules))
	for name := range actionRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultKeybindings returns the built-in binding set for mod. Tag bindings
// are generated for the first nine tags.
func DefaultKeybindings(mod string, tagCount int) []Keybinding {
	k := func(chord string) string { return mod + "-" + chord }
	out := []Keybinding{
		{Keys: k("Return"), Action: ActionTerminal, Group: "launch", Description: "open terminal"},
		{Keys: k("p"), Action: ActionLauncher, Group: "launch", Description: "open launcher"},
		{Keys: k("Shift-c"), Action: ActionClose, Group: "client", Description: "close focused window"},
		{Keys: k("j"), Action: ActionFocusNext, Group: "client", Description: "focus next window"},
		{Keys: k("k"), Action: ActionFocusPrev, Group: "client", Description: "focus previous window"},
		{Keys: k("Shift-Return"), Action: ActionSwapMaster, Group: "client", Description: "swap focused window with master"},
		{Keys: k("t"), Action: ActionToggleFloating, Group: "client", Description: "toggle floating"},
		{Keys: k("f"), Action: ActionToggleFullscreen, Group: "client", Description: "toggle fullscreen"},
		{Keys: k("space"), Action: ActionCycleLayout, Args: []string{"1"}, Group: "layout", Description: "next layout"},
		{Keys: k("Shift-space"), Action: ActionCycleLayout, Args: []string{"-1"}, Group: "layout", Description: "previous layout"},
		{Keys: k("l"), Action: ActionMasterRatio, Args: []string{"5"}, Group: "layout", Description: "grow master"},
		{Keys: k("h"), Action: ActionMasterRatio, Args: []string{"-5"}, Group: "layout", Description: "shrink master"},
		{Keys: k("i"), Action: ActionMasterCount, Args: []string{"1"}, Group: "layout", Description: "more master windows"},
		{Keys: k("d"), Action: ActionMasterCount, Args: []string{"-1"}, Group: "layout", Description: "fewer master windows"},
		{Keys: k("Tab"), Action: ActionViewPreviousTag, Group: "tag", Description: "view previous tag"},
		{Keys: k("comma"), Action: ActionFocusScreen, Args: []string{"0"}, Group: "screen", Description: "focus first screen"},
		{Keys: k("period"), Action: ActionFocusScreen, Args: []string{"1"}, Group: "screen", Description: "focus second screen"},
		{Keys: k("Shift-comma"), Action: ActionSendToScreen, Args: []string{"0"}, Group: "screen", Description: "send window to first screen"},
		{Keys: k("Shift-period"), Action: ActionSendToScreen, Args: []string{"1"}, Group: "screen", Description: "send window to second screen"},
		{Keys: k("Shift-q"), Action: ActionQuit, Group: "session", Description: "quit"},
	}
	for i := 0; i < tagCount && i < 9; i++ {
		key := strconv.Itoa(i + 1)
		idx := strconv.Itoa(i)
		out = append(out,
			Keybinding{Keys: k(key), Action: ActionViewTag, Args: []string{idx}, Group: "tag", Description: fmt.Sprintf("view tag %d", i)},
			Keybinding{Keys: k("Shift-" + key), Action: ActionMoveToTag, Args: []string{idx}, Group: "tag", Description: fmt.Sprintf("move window to tag %d", i)},
		)
	}
	return out
}
