package world

import "github.com/vovakirdan/tui-dungeon/internal/dungeon/room"

// Phase is a step of the room-change fade.
type Phase uint8

const (
	PhaseFadeOut Phase = iota
	PhaseLoad
	PhaseFadeIn
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFadeOut:
		return "FadeOut"
	case PhaseLoad:
		return "Load"
	case PhaseFadeIn:
		return "FadeIn"
	default:
		return "Unknown"
	}
}

// Event is what a transition update asks the caller to do.
type Event uint8

const (
	EventNone     Event = iota
	EventSwapRoom       // swap to Transition.To now; emitted once
	EventComplete       // fade finished; emitted once
)

// Transition is an in-flight room change: fade out, swap, fade in.
type Transition struct {
	Phase    Phase
	Elapsed  float64
	Duration float64 // seconds per fade
	To       int
	Dir      room.Direction
}

// Opacity returns the overlay opacity in [0,1].
func (t *Transition) Opacity() float64 {
	if t == nil {
		return 0
	}
	var o float64
	switch t.Phase {
	case PhaseFadeOut:
		o = t.progress()
	case PhaseLoad:
		o = 1
	case PhaseFadeIn:
		o = 1 - t.progress()
	}
	return clamp01(o)
}

func (t *Transition) progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return t.Elapsed / t.Duration
}

// update advances the transition by dt seconds. done reports that the
// transition has finished and should be dropped.
func (t *Transition) update(dt float64) (ev Event, done bool) {
	switch t.Phase {
	case PhaseFadeOut:
		t.Elapsed += dt
		if t.Elapsed >= t.Duration {
			t.Phase = PhaseLoad
			t.Elapsed = 0
			return EventSwapRoom, false
		}
	case PhaseLoad:
		t.Phase = PhaseFadeIn
		t.Elapsed = dt
		if t.Elapsed >= t.Duration {
			return EventComplete, true
		}
	case PhaseFadeIn:
		t.Elapsed += dt
		if t.Elapsed >= t.Duration {
			return EventComplete, true
		}
	}
	return EventNone, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
