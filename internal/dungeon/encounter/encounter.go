// Package encounter decides which enemies a room holds and releases them in
// waves as the fight progresses.
package encounter

import "github.com/vovakirdan/tui-dungeon/internal/dungeon/room"

// Difficulty is the tier of a room's encounter.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	BossFight
)

// String returns the tier name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case BossFight:
		return "Boss"
	default:
		return "Unknown"
	}
}

// DifficultyFor picks the encounter tier for a room of type rt, distance
// hops from the start, on the given floor. It reports false for rooms that
// hold no enemies.
func DifficultyFor(rt room.RoomType, floorNumber, distance int) (Difficulty, bool) {
	switch rt {
	case room.TypeBoss:
		return BossFight, true
	case room.TypeCombat:
		switch score := distance + floorNumber/2; {
		case score <= 2:
			return Easy, true
		case score <= 4:
			return Medium, true
		default:
			return Hard, true
		}
	case room.TypeCorridor:
		// Corridors ambush the player only on deeper floors.
		if floorNumber > 2 {
			return Easy, true
		}
	}
	return Easy, false
}

// EnemyKind names an enemy type.
type EnemyKind uint8

const (
	Skeleton EnemyKind = iota
	Ghost
	BoneKing
	Slime
)

// String returns the enemy name.
func (k EnemyKind) String() string {
	switch k {
	case Skeleton:
		return "Skeleton"
	case Ghost:
		return "Ghost"
	case BoneKing:
		return "BoneKing"
	case Slime:
		return "Slime"
	default:
		return "Unknown"
	}
}

// TriggerKind is the condition that releases a wave.
type TriggerKind uint8

const (
	Immediate TriggerKind = iota
	OnPreviousWaveCleared
	OnEnemyCountBelow
)

// Trigger releases a wave. N is only used by OnEnemyCountBelow.
type Trigger struct {
	Kind TriggerKind
	N    int
}

// Fires reports whether the trigger is satisfied with alive enemies left.
func (t Trigger) Fires(alive int) bool {
	switch t.Kind {
	case Immediate:
		return true
	case OnPreviousWaveCleared:
		return alive == 0
	case OnEnemyCountBelow:
		return alive < t.N
	default:
		return false
	}
}

// EnemySpawn places one enemy at an index into the room's spawn points.
type EnemySpawn struct {
	Kind       EnemyKind
	SpawnPoint int
}

// WaveDef is one group of enemies released together.
type WaveDef struct {
	Enemies []EnemySpawn
	Trigger Trigger
}

// Def is a complete encounter.
type Def struct {
	Difficulty Difficulty
	Waves      []WaveDef
}

// EnemyCount returns the total number of enemies over all waves.
func (d Def) EnemyCount() int {
	n := 0
	for _, w := range d.Waves {
		n += len(w.Enemies)
	}
	return n
}

// waveBuilder assigns spawn points round-robin, wrapping to the points the
// room actually has.
type waveBuilder struct {
	points int
	next   int
	wave   WaveDef
}

func (b *waveBuilder) add(kind EnemyKind, n int) {
	for i := 0; i < n; i++ {
		idx := 0
		if b.points > 0 {
			idx = b.next % b.points
		}
		b.wave.Enemies = append(b.wave.Enemies, EnemySpawn{Kind: kind, SpawnPoint: idx})
		b.next++
	}
}

func (b *waveBuilder) done(t Trigger) WaveDef {
	w := b.wave
	w.Trigger = t
	b.wave = WaveDef{}
	return w
}

// SelectEncounter builds the encounter for a room with numSpawnPoints spawn
// points. Enemy counts grow with the floor number and the seed picks one of
// three variants per tier.
func SelectEncounter(d Difficulty, floorNumber, numSpawnPoints int, seed uint64) Def {
	skeletonBonus := min(max(floorNumber, 0)/2, 3)
	ghostBonus := min(max(floorNumber, 0)/3, 2)
	variant := int(seed % 3)

	b := &waveBuilder{points: numSpawnPoints, next: variant}
	def := Def{Difficulty: d}

	switch d {
	case Easy:
		skeletons := 2 + skeletonBonus
		// Variants differ in head count and in which spawn point the
		// first skeleton takes.
		if variant == 1 {
			skeletons++
		}
		b.add(Skeleton, skeletons)
		def.Waves = append(def.Waves, b.done(Trigger{Kind: Immediate}))

	case Medium:
		first := 2 + skeletonBonus
		if variant == 1 {
			first++
		}
		b.add(Skeleton, first)
		def.Waves = append(def.Waves, b.done(Trigger{Kind: Immediate}))

		ghosts := 1 + ghostBonus
		if variant == 2 {
			ghosts++
		}
		b.add(Skeleton, 1+skeletonBonus)
		b.add(Ghost, ghosts)
		def.Waves = append(def.Waves, b.done(Trigger{Kind: OnPreviousWaveCleared}))

	case Hard:
		ghosts := 1 + ghostBonus
		if variant == 2 {
			ghosts++
		}
		b.add(Skeleton, 2+skeletonBonus)
		b.add(Ghost, ghosts)
		def.Waves = append(def.Waves, b.done(Trigger{Kind: Immediate}))

		b.add(Skeleton, 2+skeletonBonus)
		b.add(Ghost, 1+ghostBonus)
		if variant == 1 {
			b.add(Slime, 2)
		}
		def.Waves = append(def.Waves, b.done(Trigger{Kind: OnEnemyCountBelow, N: 2}))

	case BossFight:
		b.next = 0
		b.add(BoneKing, 1)
		def.Waves = append(def.Waves, b.done(Trigger{Kind: Immediate}))
	}
	return def
}
