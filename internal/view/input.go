package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/orbitsweep/orbitsweep/internal/system"
)

// Action is a one-shot command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleAutopilot
	ActionReset
	ActionSave
	ActionZoomIn
	ActionZoomOut
)

// holdTicks is how long a key press keeps steering. Terminals report key
// repeats but no releases, so a held key shows up as a stream of presses.
const holdTicks = 8

// Keyboard turns terminal key events into per-tick controls. It implements
// system.Input.
type Keyboard struct {
	rotate     int
	rotateHold int
	thrustHold int
}

func NewKeyboard() *Keyboard { return &Keyboard{} }

// HandleKey records steering keys and returns any one-shot action.
func (k *Keyboard) HandleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		k.rotate, k.rotateHold = 1, holdTicks
		return ActionNone
	case tcell.KeyRight:
		k.rotate, k.rotateHold = -1, holdTicks
		return ActionNone
	case tcell.KeyUp:
		k.thrustHold = holdTicks
		return ActionNone
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ev.Rune() {
	case 'q':
		return ActionQuit
	case 'a':
		k.rotate, k.rotateHold = 1, holdTicks
	case 'd':
		k.rotate, k.rotateHold = -1, holdTicks
	case 'w', ' ':
		k.thrustHold = holdTicks
	case 'p':
		return ActionToggleAutopilot
	case 'r':
		return ActionReset
	case 's':
		return ActionSave
	case '+', '=':
		return ActionZoomIn
	case '-':
		return ActionZoomOut
	}
	return ActionNone
}

// Controls reports this tick's input and ages the held keys.
func (k *Keyboard) Controls() system.Controls {
	var c system.Controls
	if k.rotateHold > 0 {
		c.Rotate = k.rotate
		k.rotateHold--
	}
	if k.thrustHold > 0 {
		c.Thrust = true
		k.thrustHold--
	}
	return c
}
