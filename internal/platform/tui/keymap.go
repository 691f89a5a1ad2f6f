package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to game actions. Dash keys yield a
// direction together with ActionDash. The second return reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	switch key {
	case "a", "left", "h":
		return []core.Action{core.ActionLeft}, false
	case "d", "right", "l":
		return []core.Action{core.ActionRight}, false
	case "shift+left", "z", "Z":
		return []core.Action{core.ActionLeft, core.ActionDash}, false
	case "shift+right", "x", "X":
		return []core.Action{core.ActionRight, core.ActionDash}, false
	case " ", "up", "w":
		return []core.Action{core.ActionLaunch}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	}

	return nil, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
