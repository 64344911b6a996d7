package room

import (
	"errors"
	"fmt"
)

// Template parse errors.
var (
	ErrEmptyTemplate = errors.New("template has no rows")
	ErrZeroWidth     = errors.New("template row has zero width")
	ErrRaggedRows    = errors.New("template rows differ in width")
)

// Template is the immutable geometry of a room. Tiles are stored in
// row-major order: index = y*Width + x.
type Template struct {
	Name        string
	Width       int
	Height      int
	Tiles       []TileKind
	SpawnPoints []SpawnPoint
	EntryPoints []EntryPoint
	PlayerSpawn *Point // nil when the template has no marker
	Type        RoomType
}

// Parse builds a template from ASCII rows.
// Characters:
//
//	'W' = wall
//	'.' = floor
//	'D' = closed door (also an entry point, direction inferred from position)
//	'S' = spawn point in group 0
//	'0'-'9' = spawn point in that group
//	'P' = player spawn marker
//	'E' = player spawn marker (stairs), only in Exit rooms
//	'#' = pit
//
// Anything else is floor. Rows must be ASCII and all the same width.
func Parse(name string, rows []string, rt RoomType) (*Template, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse %s: %w", name, ErrEmptyTemplate)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("parse %s: %w", name, ErrZeroWidth)
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("parse %s: row %d has width %d, want %d: %w",
				name, i, len(row), width, ErrRaggedRows)
		}
	}

	t := &Template{
		Name:   name,
		Width:  width,
		Height: len(rows),
		Tiles:  make([]TileKind, width*len(rows)),
		Type:   rt,
	}

	for y, row := range rows {
		for x := 0; x < width; x++ {
			kind := Floor
			switch ch := row[x]; {
			case ch == 'W':
				kind = Wall
			case ch == 'D':
				kind = DoorClosed
				t.EntryPoints = append(t.EntryPoints, EntryPoint{
					X:   x,
					Y:   y,
					Dir: inferDoorDirection(x, y, t.Width, t.Height),
				})
			case ch == '#':
				kind = Pit
			case ch == 'S':
				t.SpawnPoints = append(t.SpawnPoints, SpawnPoint{X: x, Y: y, Group: 0})
			case ch >= '0' && ch <= '9':
				t.SpawnPoints = append(t.SpawnPoints, SpawnPoint{X: x, Y: y, Group: int(ch - '0')})
			case ch == 'P':
				t.PlayerSpawn = &Point{X: x, Y: y}
			case ch == 'E' && rt == TypeExit:
				t.PlayerSpawn = &Point{X: x, Y: y}
			}
			t.Tiles[y*width+x] = kind
		}
	}

	t.capWalls()
	return t, nil
}

// MustParse is like Parse but panics on malformed input. The room catalog is
// compiled into the program, so a parse failure there is a programming error.
func MustParse(name string, rows []string, rt RoomType) *Template {
	t, err := Parse(name, rows, rt)
	if err != nil {
		panic("room: " + err.Error())
	}
	return t
}

// capWalls turns walls that sit directly above open ground into wall tops.
func (t *Template) capWalls() {
	for y := 0; y < t.Height-1; y++ {
		for x := 0; x < t.Width; x++ {
			i := y*t.Width + x
			if t.Tiles[i] != Wall {
				continue
			}
			if !t.Tiles[i+t.Width].wallLike() {
				t.Tiles[i] = WallTop
			}
		}
	}
}

// inferDoorDirection maps a door tile to the side of the room it opens onto.
// Edge tiles map directly; interior doors take the nearest edge, with ties
// resolved North, South, West, East.
func inferDoorDirection(x, y, w, h int) Direction {
	switch {
	case y == 0:
		return North
	case y == h-1:
		return South
	case x == 0:
		return West
	case x == w-1:
		return East
	}

	dist := map[Direction]int{
		North: y,
		South: h - 1 - y,
		West:  x,
		East:  w - 1 - x,
	}
	best := Directions[0]
	for _, d := range Directions[1:] {
		if dist[d] < dist[best] {
			best = d
		}
	}
	return best
}

// InBounds reports whether (x, y) lies inside the template.
func (t *Template) InBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// At returns the tile at (x, y), or Wall when out of bounds.
func (t *Template) At(x, y int) TileKind {
	if !t.InBounds(x, y) {
		return Wall
	}
	return t.Tiles[y*t.Width+x]
}

// HasDoor reports whether any entry point opens onto dir.
func (t *Template) HasDoor(dir Direction) bool {
	for _, e := range t.EntryPoints {
		if e.Dir == dir {
			return true
		}
	}
	return false
}

// DoorDirections returns each side with a door once, in the order the doors
// appear scanning rows top to bottom.
func (t *Template) DoorDirections() []Direction {
	var dirs []Direction
	seen := make(map[Direction]bool, 4)
	for _, e := range t.EntryPoints {
		if !seen[e.Dir] {
			seen[e.Dir] = true
			dirs = append(dirs, e.Dir)
		}
	}
	return dirs
}

// EntryFacing returns the first entry point opening onto dir.
func (t *Template) EntryFacing(dir Direction) (EntryPoint, bool) {
	for _, e := range t.EntryPoints {
		if e.Dir == dir {
			return e, true
		}
	}
	return EntryPoint{}, false
}

// SpawnGroup returns the spawn points belonging to group g.
func (t *Template) SpawnGroup(g int) []SpawnPoint {
	var pts []SpawnPoint
	for _, sp := range t.SpawnPoints {
		if sp.Group == g {
			pts = append(pts, sp)
		}
	}
	return pts
}

// Clone returns a deep copy of the template.
func (t *Template) Clone() *Template {
	c := *t
	c.Tiles = append([]TileKind(nil), t.Tiles...)
	c.SpawnPoints = append([]SpawnPoint(nil), t.SpawnPoints...)
	c.EntryPoints = append([]EntryPoint(nil), t.EntryPoints...)
	if t.PlayerSpawn != nil {
		p := *t.PlayerSpawn
		c.PlayerSpawn = &p
	}
	return &c
}
