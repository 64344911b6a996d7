package encounter

import "github.com/vovakirdan/tui-dungeon/internal/dungeon/room"

// Spawn is an enemy ready to be constructed: a pixel position and the seed
// its behaviour should be driven by.
type Spawn struct {
	Kind EnemyKind
	X, Y float64
	Seed uint64
}

// SpawnSeed derives the seed of the i-th enemy of a wave in a room.
func SpawnSeed(roomIndex int, baseSeed uint64, i int) uint64 {
	return uint64(roomIndex)*31337 + baseSeed + uint64(i)*7919 + 1
}

// InstantiateWave resolves a wave against the room's spawn points. Each
// enemy appears at the centre of its spawn tile. A room without spawn points
// produces no spawns.
func InstantiateWave(w WaveDef, points []room.SpawnPoint, roomIndex int, baseSeed uint64, tileSize float64) []Spawn {
	if len(points) == 0 {
		return nil
	}
	spawns := make([]Spawn, 0, len(w.Enemies))
	for i, e := range w.Enemies {
		p := points[e.SpawnPoint%len(points)]
		spawns = append(spawns, Spawn{
			Kind: e.Kind,
			X:    (float64(p.X) + 0.5) * tileSize,
			Y:    (float64(p.Y) + 0.5) * tileSize,
			Seed: SpawnSeed(roomIndex, baseSeed, i),
		})
	}
	return spawns
}

// Factory constructs concrete enemies. The encounter package keeps no
// reference to what it returns.
type Factory[E any] interface {
	Skeleton(x, y float64, seed uint64) E
	Ghost(x, y float64, seed uint64) E
	BoneKing(x, y float64, seed uint64) E
	Slime(x, y float64) E
}

// Dispatch builds one enemy per spawn with f.
func Dispatch[E any](f Factory[E], spawns []Spawn) []E {
	out := make([]E, 0, len(spawns))
	for _, s := range spawns {
		switch s.Kind {
		case Skeleton:
			out = append(out, f.Skeleton(s.X, s.Y, s.Seed))
		case Ghost:
			out = append(out, f.Ghost(s.X, s.Y, s.Seed))
		case BoneKing:
			out = append(out, f.BoneKing(s.X, s.Y, s.Seed))
		case Slime:
			out = append(out, f.Slime(s.X, s.Y))
		}
	}
	return out
}
