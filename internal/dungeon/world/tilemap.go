package world

import "github.com/vovakirdan/tui-dungeon/internal/dungeon/room"

// TileMap is the mutable tile grid of the room the player is in.
// It is rebuilt on every room entry.
type TileMap struct {
	Width  int
	Height int
	Tiles  []room.TileKind
}

// NewTileMap copies a template's tiles into a fresh map.
func NewTileMap(t *room.Template) *TileMap {
	return &TileMap{
		Width:  t.Width,
		Height: t.Height,
		Tiles:  append([]room.TileKind(nil), t.Tiles...),
	}
}

// InBounds reports whether (x, y) lies on the map.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the tile at (x, y). Everything off the map is wall.
func (m *TileMap) At(x, y int) room.TileKind {
	if !m.InBounds(x, y) {
		return room.Wall
	}
	return m.Tiles[y*m.Width+x]
}

// Set replaces the tile at (x, y). Out-of-bounds writes are ignored.
func (m *TileMap) Set(x, y int, k room.TileKind) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[y*m.Width+x] = k
}

// Walkable reports whether a grounded walker may stand on (x, y).
func (m *TileMap) Walkable(x, y int) bool {
	return m.At(x, y).Walkable()
}

// Solid reports whether (x, y) blocks movement.
func (m *TileMap) Solid(x, y int) bool {
	return m.At(x, y).Solid()
}

// OpenDoors turns every closed door into an open one and returns how many
// changed.
func (m *TileMap) OpenDoors() int {
	n := 0
	for i, k := range m.Tiles {
		if k == room.DoorClosed {
			m.Tiles[i] = room.DoorOpen
			n++
		}
	}
	return n
}

// Count returns how many tiles are of kind k.
func (m *TileMap) Count(k room.TileKind) int {
	n := 0
	for _, t := range m.Tiles {
		if t == k {
			n++
		}
	}
	return n
}
