package tui

import "github.com/vovakirdan/tui-dungeon/internal/core"

// heldTicks is how long a movement key counts as held after its last key
// event. Terminals send auto-repeat presses but never key releases, so a
// direction stays down until the repeats stop arriving.
const heldTicks = 4

// inputState collects key events between ticks and turns them into one
// InputFrame per tick.
type inputState struct {
	held    map[core.Action]int // ticks left for each held direction
	pressed core.InputFrame     // one-shot actions since the last tick
}

func newInputState() *inputState {
	return &inputState{
		held:    make(map[core.Action]int),
		pressed: core.NewInputFrame(),
	}
}

func isMovement(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// press records a key event.
func (s *inputState) press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if isMovement(a) {
		delete(s.held, opposite(a))
		s.held[a] = heldTicks
		return
	}
	s.pressed.Set(a)
}

// frame returns the input for the next tick and ages held keys.
func (s *inputState) frame() core.InputFrame {
	f := s.pressed.Clone()
	for a, left := range s.held {
		f.Set(a)
		if left <= 1 {
			delete(s.held, a)
		} else {
			s.held[a] = left - 1
		}
	}
	s.pressed.Clear()
	return f
}

// reset drops everything pending.
func (s *inputState) reset() {
	clear(s.held)
	s.pressed.Clear()
}
