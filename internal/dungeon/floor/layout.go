// Package floor builds dungeon floors: a connected graph of rooms laid out on
// an integer grid, generated deterministically from a floor number and seed.
package floor

import (
	"slices"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

// GridPos is a room's cell on the floor grid. Y grows southwards.
type GridPos struct {
	X, Y int
}

// Step returns the neighbouring cell in direction d.
func (p GridPos) Step(d room.Direction) GridPos {
	dx, dy := d.Delta()
	return GridPos{X: p.X + dx, Y: p.Y + dy}
}

// PlacedRoom is a template instance at a grid cell, with play state.
type PlacedRoom struct {
	Template   *room.Template
	Pos        GridPos
	Type       room.RoomType
	Cleared    bool
	Discovered bool
}

// Connection is an undirected edge between two room indices.
type Connection struct {
	A, B int
}

// Has reports whether the connection touches room i.
func (c Connection) Has(i int) bool {
	return c.A == i || c.B == i
}

// Other returns the endpoint that is not i.
func (c Connection) Other(i int) int {
	if c.A == i {
		return c.B
	}
	return c.A
}

// Layout is one generated floor. Room 0 is always the start room at (0,0).
type Layout struct {
	FloorNumber int
	Seed        uint64
	Attempt     int // generation attempt that produced the layout
	Rooms       []*PlacedRoom
	Connections []Connection
	Fallback    bool
}

// Degree returns the number of connections incident to room i.
func (l *Layout) Degree(i int) int {
	n := 0
	for _, c := range l.Connections {
		if c.Has(i) {
			n++
		}
	}
	return n
}

// Neighbors returns the indices connected to room i in ascending order.
func (l *Layout) Neighbors(i int) []int {
	var out []int
	for _, c := range l.Connections {
		if c.Has(i) {
			out = append(out, c.Other(i))
		}
	}
	slices.Sort(out)
	return out
}

// Connected reports whether rooms a and b share a connection.
func (l *Layout) Connected(a, b int) bool {
	for _, c := range l.Connections {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return true
		}
	}
	return false
}

// Distances returns the BFS hop count from room `from` to every room,
// or -1 for rooms that cannot be reached.
func (l *Layout) Distances(from int) []int {
	dist := make([]int, len(l.Rooms))
	for i := range dist {
		dist[i] = -1
	}
	if from < 0 || from >= len(l.Rooms) {
		return dist
	}

	adj := make([][]int, len(l.Rooms))
	for i := range l.Rooms {
		adj[i] = l.Neighbors(i)
	}

	dist[from] = 0
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if n < 0 || n >= len(dist) || dist[n] >= 0 {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Reachable reports whether every room can be reached from the start room.
func (l *Layout) Reachable() bool {
	if len(l.Rooms) == 0 {
		return false
	}
	for _, d := range l.Distances(0) {
		if d < 0 {
			return false
		}
	}
	return true
}

// RoomAt returns the index of the room at pos.
func (l *Layout) RoomAt(pos GridPos) (int, bool) {
	for i, r := range l.Rooms {
		if r.Pos == pos {
			return i, true
		}
	}
	return -1, false
}

// NeighborInDirection returns the room on side dir of room i, provided the
// two rooms are connected.
func (l *Layout) NeighborInDirection(i int, dir room.Direction) (int, bool) {
	if i < 0 || i >= len(l.Rooms) || dir == room.DirNone {
		return -1, false
	}
	j, ok := l.RoomAt(l.Rooms[i].Pos.Step(dir))
	if !ok || !l.Connected(i, j) {
		return -1, false
	}
	return j, true
}

// DirectionTo returns the side of room i that faces the adjacent room j.
func (l *Layout) DirectionTo(i, j int) room.Direction {
	a, b := l.Rooms[i].Pos, l.Rooms[j].Pos
	for _, d := range room.Directions {
		if a.Step(d) == b {
			return d
		}
	}
	return room.DirNone
}

// CountType returns how many rooms have type t.
func (l *Layout) CountType(t room.RoomType) int {
	n := 0
	for _, r := range l.Rooms {
		if r.Type == t {
			n++
		}
	}
	return n
}

// IndexOf returns the first room with type t.
func (l *Layout) IndexOf(t room.RoomType) (int, bool) {
	for i, r := range l.Rooms {
		if r.Type == t {
			return i, true
		}
	}
	return -1, false
}

// ClearedCount returns the number of cleared rooms.
func (l *Layout) ClearedCount() int {
	n := 0
	for _, r := range l.Rooms {
		if r.Cleared {
			n++
		}
	}
	return n
}

// Bounds returns the smallest and largest occupied grid cells.
func (l *Layout) Bounds() (minPos, maxPos GridPos) {
	for i, r := range l.Rooms {
		if i == 0 {
			minPos, maxPos = r.Pos, r.Pos
			continue
		}
		minPos.X = min(minPos.X, r.Pos.X)
		minPos.Y = min(minPos.Y, r.Pos.Y)
		maxPos.X = max(maxPos.X, r.Pos.X)
		maxPos.Y = max(maxPos.Y, r.Pos.Y)
	}
	return minPos, maxPos
}
