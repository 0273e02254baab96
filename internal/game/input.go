package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionWait
	ActionPickup
	ActionDescend
	ActionQuit
)

// keyToAction maps a tcell key event to a game action. Movement is
// orthogonal only; diagonals would bypass the shield-wall formations.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape:
		return ActionQuit
	}

	switch ev.Rune() {
	case 'k', 'K', 'w', 'W':
		return ActionMoveN
	case 'j', 'J', 's', 'S':
		return ActionMoveS
	case 'l', 'L', 'd', 'D':
		return ActionMoveE
	case 'h', 'H', 'a', 'A':
		return ActionMoveW
	case '.':
		return ActionWait
	case ',', 'g', 'G':
		return ActionPickup
	case '>':
		return ActionDescend
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a movement action to (dx, dy).
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionMoveN:
		return 0, -1
	case ActionMoveS:
		return 0, 1
	case ActionMoveE:
		return 1, 0
	case ActionMoveW:
		return -1, 0
	}
	return 0, 0
}
