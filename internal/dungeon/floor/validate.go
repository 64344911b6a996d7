package floor

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

// ValidationError describes why a layout breaks a floor invariant.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a layout against the floor invariants:
//   - start room at index 0, at (0,0), on a Start template
//   - no two rooms on the same cell
//   - every connection joins grid neighbours through a matching door pair
//   - every room reachable from the start
//   - exactly one boss room and one exit room
func Validate(l *Layout) error {
	if l == nil || len(l.Rooms) == 0 {
		return ValidationError{Code: "EMPTY", Message: "layout has no rooms"}
	}
	if err := validateStart(l); err != nil {
		return err
	}
	if err := validateCells(l); err != nil {
		return err
	}
	if err := validateEdges(l); err != nil {
		return err
	}
	if !l.Reachable() {
		return ValidationError{Code: "UNREACHABLE", Message: "some rooms cannot be reached from the start"}
	}
	if n := l.CountType(room.TypeBoss); n != 1 {
		return ValidationError{Code: "BOSS_COUNT", Message: fmt.Sprintf("%d boss rooms, want 1", n)}
	}
	if n := l.CountType(room.TypeExit); n != 1 {
		return ValidationError{Code: "EXIT_COUNT", Message: fmt.Sprintf("%d exit rooms, want 1", n)}
	}
	return nil
}

func validateStart(l *Layout) error {
	s := l.Rooms[0]
	if s.Type != room.TypeStart || s.Pos != (GridPos{}) || s.Template == nil || s.Template.Type != room.TypeStart {
		return ValidationError{Code: "BAD_START", Message: fmt.Sprintf("room 0 is %s at %v", s.Type, s.Pos)}
	}
	if n := l.CountType(room.TypeStart); n != 1 {
		return ValidationError{Code: "BAD_START", Message: fmt.Sprintf("%d start rooms", n)}
	}
	return nil
}

func validateCells(l *Layout) error {
	seen := mapset.New[GridPos]()
	for i, r := range l.Rooms {
		if seen.Has(r.Pos) {
			return ValidationError{Code: "COLLISION", Message: fmt.Sprintf("room %d shares cell %v", i, r.Pos)}
		}
		seen.Put(r.Pos)
	}
	return nil
}

func validateEdges(l *Layout) error {
	for _, c := range l.Connections {
		if c.A < 0 || c.B < 0 || c.A >= len(l.Rooms) || c.B >= len(l.Rooms) {
			return ValidationError{Code: "BAD_EDGE", Message: fmt.Sprintf("edge %d-%d out of range", c.A, c.B)}
		}
		if c.A == c.B {
			return ValidationError{Code: "BAD_EDGE", Message: fmt.Sprintf("edge %d-%d is a loop", c.A, c.B)}
		}
		dir := l.DirectionTo(c.A, c.B)
		if dir == room.DirNone {
			return ValidationError{Code: "BAD_EDGE", Message: fmt.Sprintf("rooms %d and %d are not adjacent", c.A, c.B)}
		}
		if !l.Rooms[c.A].Template.HasDoor(dir) || !l.Rooms[c.B].Template.HasDoor(dir.Opposite()) {
			return ValidationError{
				Code:    "BAD_EDGE",
				Message: fmt.Sprintf("rooms %d and %d have no facing doors on %s", c.A, c.B, dir),
			}
		}
	}
	return nil
}
