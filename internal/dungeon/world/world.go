// Package world holds the live state of the floor the player is exploring:
// which room they are in, the tiles of that room, and the fade between rooms.
package world

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

// Options tunes the world.
type Options struct {
	TileSize        float64 // pixels per tile
	FadeDuration    float64 // seconds per fade phase
	FloorSeedStride uint64  // seed offset applied when descending a floor
}

// DefaultOptions returns the standard world tuning.
func DefaultOptions() Options {
	return Options{
		TileSize:        16,
		FadeDuration:    0.3,
		FloorSeedStride: 0x9E3779B97F4A7C15,
	}
}

// World is the navigation state of one run. It is owned by the simulation
// loop and is not safe for concurrent use.
type World struct {
	Layout      *floor.Layout
	Current     int
	Transition  *Transition
	FloorNumber int
	Seed        uint64

	gen  *floor.Generator
	opts Options
}

// New generates the given floor and places the player in its start room.
func New(gen *floor.Generator, floorNumber int, seed uint64, opts Options) *World {
	def := DefaultOptions()
	if opts.TileSize <= 0 {
		opts.TileSize = def.TileSize
	}
	if opts.FadeDuration <= 0 {
		opts.FadeDuration = def.FadeDuration
	}
	if opts.FloorSeedStride == 0 {
		opts.FloorSeedStride = def.FloorSeedStride
	}
	if gen == nil {
		gen = floor.NewGenerator(floor.DefaultParams())
	}
	if floorNumber < 1 {
		floorNumber = 1
	}

	w := &World{
		FloorNumber: floorNumber,
		Seed:        seed,
		gen:         gen,
		opts:        opts,
	}
	w.regenerate()
	return w
}

// Options returns the world's effective tuning.
func (w *World) Options() Options {
	return w.opts
}

// TileSize returns the pixel size of one tile.
func (w *World) TileSize() float64 {
	return w.opts.TileSize
}

func (w *World) regenerate() {
	w.Layout = w.gen.Generate(w.FloorNumber, w.Seed)
	w.Current = 0
	w.Transition = nil
}

// CurrentRoom returns the room the player is in.
func (w *World) CurrentRoom() *floor.PlacedRoom {
	return w.Layout.Rooms[w.Current]
}

// BuildTileMap materializes the current room. Doors of cleared rooms and the
// start room are open. Doors with no connected room behind them are walled
// up.
func (w *World) BuildTileMap() *TileMap {
	r := w.CurrentRoom()
	tm := NewTileMap(r.Template)

	for _, e := range r.Template.EntryPoints {
		if _, ok := w.Layout.NeighborInDirection(w.Current, e.Dir); !ok {
			seal := room.Wall
			if e.Y+1 < tm.Height && !tm.Solid(e.X, e.Y+1) {
				seal = room.WallTop
			}
			tm.Set(e.X, e.Y, seal)
		}
	}
	if r.Cleared || r.Type == room.TypeStart {
		tm.OpenDoors()
	}
	return tm
}

// CheckDoorCollision reports the room behind the open door the player at
// pixel position (px, py) is touching. A door counts when the player's tile
// is the door tile or orthogonally next to it.
func (w *World) CheckDoorCollision(px, py float64, tm *TileMap) (to int, dir room.Direction, ok bool) {
	tx := int(math.Floor(px / w.opts.TileSize))
	ty := int(math.Floor(py / w.opts.TileSize))

	for _, e := range w.CurrentRoom().Template.EntryPoints {
		dx := abs(e.X - tx)
		dy := abs(e.Y - ty)
		if dx > 1 || dy > 1 || dx+dy > 1 {
			continue
		}
		if tm.At(e.X, e.Y) != room.DoorOpen {
			continue
		}
		if j, found := w.Layout.NeighborInDirection(w.Current, e.Dir); found {
			return j, e.Dir, true
		}
	}
	return -1, room.DirNone, false
}

// StartTransition begins the fade to room `to`, entered travelling in dir.
// It does nothing while another transition is running or when `to` is not a
// room on this floor.
func (w *World) StartTransition(to int, dir room.Direction) {
	if w.Transition != nil || to < 0 || to >= len(w.Layout.Rooms) {
		return
	}
	w.Transition = &Transition{
		Phase:    PhaseFadeOut,
		Duration: w.opts.FadeDuration,
		To:       to,
		Dir:      dir,
	}
}

// UpdateTransition advances the fade by dt seconds. The caller must call
// SwapToRoom when it returns EventSwapRoom.
func (w *World) UpdateTransition(dt float64) Event {
	if w.Transition == nil {
		return EventNone
	}
	ev, done := w.Transition.update(dt)
	if done {
		w.Transition = nil
	}
	return ev
}

// InTransition reports whether a fade is running.
func (w *World) InTransition() bool {
	return w.Transition != nil
}

// Opacity returns the fade overlay opacity in [0,1].
func (w *World) Opacity() float64 {
	return w.Transition.Opacity()
}

// SwapToRoom makes room i current and marks it discovered.
func (w *World) SwapToRoom(i int) {
	if i < 0 || i >= len(w.Layout.Rooms) {
		return
	}
	w.Current = i
	w.MarkRoomDiscovered(i)
}

// PlayerSpawnPosition returns where the player appears in the current room,
// in pixels. Entering travelling in direction from puts the player 1.5 tiles
// inside the door they came through. Otherwise the room's spawn marker is
// used, and failing that the room centre.
func (w *World) PlayerSpawnPosition(from room.Direction) (x, y float64) {
	t := w.CurrentRoom().Template
	ts := w.opts.TileSize

	if from != room.DirNone {
		if e, ok := t.EntryFacing(from.Opposite()); ok {
			dx, dy := from.Delta()
			x = (float64(e.X) + 0.5 + float64(dx)*1.5) * ts
			y = (float64(e.Y) + 0.5 + float64(dy)*1.5) * ts
			return x, y
		}
	}
	if t.PlayerSpawn != nil {
		return (float64(t.PlayerSpawn.X) + 0.5) * ts, (float64(t.PlayerSpawn.Y) + 0.5) * ts
	}
	return float64(t.Width) * ts / 2, float64(t.Height) * ts / 2
}

// MarkRoomCleared flags room i as cleared.
func (w *World) MarkRoomCleared(i int) {
	if i >= 0 && i < len(w.Layout.Rooms) {
		w.Layout.Rooms[i].Cleared = true
	}
}

// MarkRoomDiscovered flags room i as discovered.
func (w *World) MarkRoomDiscovered(i int) {
	if i >= 0 && i < len(w.Layout.Rooms) {
		w.Layout.Rooms[i].Discovered = true
	}
}

// Reset rebuilds the current floor from its seed, as after a death.
func (w *World) Reset() {
	w.regenerate()
}

// NextFloor descends one floor with a derived seed.
func (w *World) NextFloor() {
	w.FloorNumber++
	w.Seed += w.opts.FloorSeedStride
	w.regenerate()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
