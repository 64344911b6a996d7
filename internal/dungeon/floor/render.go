package floor

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

// Glyph returns the minimap letter for a room type.
func Glyph(t room.RoomType) rune {
	switch t {
	case room.TypeStart:
		return 'S'
	case room.TypeCombat:
		return 'C'
	case room.TypeTreasure:
		return 'T'
	case room.TypeShop:
		return '$'
	case room.TypeBoss:
		return 'B'
	case room.TypeExit:
		return 'X'
	case room.TypeCorridor:
		return '+'
	default:
		return '?'
	}
}

// Render draws the layout as an ASCII map. Rooms sit on every other column
// and row; connections are drawn between them with '-' and '|'.
//
// Example:
//
//	S
//	|
//	C-B
func Render(l *Layout) string {
	if l == nil || len(l.Rooms) == 0 {
		return "(empty floor)\n"
	}

	lo, hi := l.Bounds()
	w := (hi.X-lo.X)*2 + 1
	h := (hi.Y-lo.Y)*2 + 1

	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
	}

	for _, r := range l.Rooms {
		grid[(r.Pos.Y-lo.Y)*2][(r.Pos.X-lo.X)*2] = Glyph(r.Type)
	}
	for _, c := range l.Connections {
		a, b := l.Rooms[c.A].Pos, l.Rooms[c.B].Pos
		x := (a.X - lo.X) + (b.X - lo.X)
		y := (a.Y - lo.Y) + (b.Y - lo.Y)
		if a.Y == b.Y {
			grid[y][x] = '-'
		} else {
			grid[y][x] = '|'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary returns a one-line description of the layout.
func Summary(l *Layout) string {
	kind := "generated"
	if l.Fallback {
		kind = "fallback"
	}
	return fmt.Sprintf("floor %d seed %d: %d rooms, %d connections (%s, attempt %d)",
		l.FloorNumber, l.Seed, len(l.Rooms), len(l.Connections), kind, l.Attempt)
}
