package crawler

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/encounter"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/world"
	"github.com/vovakirdan/tui-dungeon/internal/rng"
)

// Bone King charge timing, in seconds.
const (
	chargeEvery    = 3.0
	chargeDuration = 0.6
	chargeBoost    = 2.5
)

// knockback is how far a hit pushes an enemy, in pixels.
const knockback = 6.0

// Enemy is a live monster in the current room.
type Enemy struct {
	Kind   encounter.EnemyKind
	Pos    core.Vec
	HP     int
	Damage int
	Speed  float64
	Score  int

	rng    *rng.XorShift
	drift  core.Vec // wander or jitter direction
	retime float64  // seconds until drift is re-rolled
	charge float64  // Bone King: seconds until the next charge, negative while charging
}

// Box returns the enemy's collision box.
func (e *Enemy) Box() core.Box {
	return core.Box{Center: e.Pos, Half: bodyHalf}
}

// Alive reports whether the enemy still has HP.
func (e *Enemy) Alive() bool {
	return e.HP > 0
}

// update steers the enemy toward target for one tick.
func (e *Enemy) update(target core.Vec, tm *world.TileMap, ts, dt float64) {
	e.retime -= dt
	if e.retime <= 0 {
		e.reroll()
	}

	toward := target.Sub(e.Pos).Normalize()
	var dir core.Vec
	speed := e.Speed
	move := passable(grounded)

	switch e.Kind {
	case encounter.Skeleton:
		dir = toward.Add(e.drift.Scale(0.35)).Normalize()
	case encounter.Ghost:
		dir = toward
		move = phasing
	case encounter.BoneKing:
		e.charge -= dt
		if e.charge < -chargeDuration {
			e.charge = chargeEvery
		}
		if e.charge < 0 {
			speed *= chargeBoost
		}
		dir = toward
	case encounter.Slime:
		dir = e.drift.Add(toward.Scale(0.5)).Normalize()
	}

	e.Pos = moveBody(tm, ts, e.Pos, dir.Scale(speed*dt), move)
}

func (e *Enemy) reroll() {
	angle := e.rng.Float() * 2 * math.Pi
	e.drift = core.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	e.retime = 0.5 + e.rng.Float()
}

// hit deals dmg and pushes the enemy away from the attacker. It reports
// whether the blow was fatal.
func (e *Enemy) hit(dmg int, from core.Vec, tm *world.TileMap, ts float64) bool {
	e.HP -= dmg
	move := passable(grounded)
	if e.Kind == encounter.Ghost {
		move = phasing
	}
	// The Bone King does not flinch.
	if e.Kind != encounter.BoneKing {
		e.Pos = moveBody(tm, ts, e.Pos, e.Pos.Sub(from).Normalize().Scale(knockback), move)
	}
	return e.HP <= 0
}

// enemyFactory builds enemies with stats for the current floor.
type enemyFactory struct {
	cfg        config.EnemiesConfig
	difficulty *config.DifficultyManager
	floor      int
}

var _ encounter.Factory[*Enemy] = enemyFactory{}

func (f enemyFactory) Skeleton(x, y float64, seed uint64) *Enemy {
	return f.build(encounter.Skeleton, f.cfg.Skeleton, x, y, seed)
}

func (f enemyFactory) Ghost(x, y float64, seed uint64) *Enemy {
	return f.build(encounter.Ghost, f.cfg.Ghost, x, y, seed)
}

func (f enemyFactory) BoneKing(x, y float64, seed uint64) *Enemy {
	e := f.build(encounter.BoneKing, f.cfg.BoneKing, x, y, seed)
	e.charge = chargeEvery
	return e
}

// Slime spawns carry no seed, so their wander stream is keyed by position.
func (f enemyFactory) Slime(x, y float64) *Enemy {
	seed := uint64(int64(x))*73856093 ^ uint64(int64(y))*19349663
	return f.build(encounter.Slime, f.cfg.Slime, x, y, seed)
}

func (f enemyFactory) build(kind encounter.EnemyKind, base config.EnemyStats, x, y float64, seed uint64) *Enemy {
	s := base
	if f.difficulty != nil {
		s = f.difficulty.Scale(base, f.floor)
	}
	dmg := s.Damage
	if f.cfg.DamageMultiplier > 0 {
		dmg = max(1, int(math.Round(float64(dmg)*f.cfg.DamageMultiplier)))
	}

	e := &Enemy{
		Kind:   kind,
		Pos:    core.Vec{X: x, Y: y},
		HP:     max(1, s.HP),
		Damage: dmg,
		Speed:  s.Speed,
		Score:  s.Score,
		rng:    rng.New(seed),
	}
	e.reroll()
	return e
}
