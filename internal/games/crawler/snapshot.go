package crawler

import "math"

// Snapshot is the observable state of a run, flattened to primitives so two
// runs can be compared for determinism.
type Snapshot struct {
	Tick         uint64
	State        string
	Score        int
	Lives        int
	Floor        int
	FloorSeed    uint64
	Room         int
	RoomsCleared int
	InTransition bool

	// Player position in whole pixels, and HP
	PlayerX  int
	PlayerY  int
	PlayerHP int

	// Encounter progress; -1 when the room has no live encounter
	WaveIndex int

	// Each enemy is 4 ints: Kind, X, Y, HP
	EnemyData []int

	// Cleared flag per room on the floor
	Cleared []bool
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	enemyData := make([]int, 0, len(g.enemies)*4)
	for _, e := range g.enemies {
		enemyData = append(enemyData, int(e.Kind), int(math.Round(e.Pos.X)), int(math.Round(e.Pos.Y)), e.HP)
	}

	cleared := make([]bool, len(g.world.Layout.Rooms))
	for i, r := range g.world.Layout.Rooms {
		cleared[i] = r.Cleared
	}

	wave := -1
	if g.tracker != nil {
		wave = g.tracker.WaveIndex()
	}

	return Snapshot{
		Tick:         g.tick,
		State:        g.state,
		Score:        g.score,
		Lives:        g.lives,
		Floor:        g.world.FloorNumber,
		FloorSeed:    g.world.Seed,
		Room:         g.world.Current,
		RoomsCleared: g.roomsCleared,
		InTransition: g.world.InTransition(),
		PlayerX:      int(math.Round(g.player.Pos.X)),
		PlayerY:      int(math.Round(g.player.Pos.Y)),
		PlayerHP:     g.player.HP,
		WaveIndex:    wave,
		EnemyData:    enemyData,
		Cleared:      cleared,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Floor) //#nosec G115 -- hash computation
	h = h*31 + snap.FloorSeed
	h = h*31 + uint64(snap.Room)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.RoomsCleared) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerHP)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.WaveIndex+1)  //#nosec G115 -- hash computation
	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, c := range snap.Cleared {
		if c {
			h = h*31 + 1
		} else {
			h *= 31
		}
	}
	for _, r := range snap.State {
		h = h*31 + uint64(r)
	}
	return h
}
