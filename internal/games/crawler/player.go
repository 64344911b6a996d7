package crawler

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/world"
)

// bodyHalf is the half-size in pixels of every creature's collision box.
const bodyHalf = 5.0

// swingTime is how long an attack stays visible, in seconds.
const swingTime = 0.15

// Player is the hero.
type Player struct {
	Pos      core.Vec
	HP       int
	MaxHP    int
	Facing   room.Direction
	Cooldown float64 // seconds until the next attack
	Invuln   float64 // seconds of invulnerability left
	Swing    float64 // seconds the current swing stays drawn
}

// Box returns the player's collision box.
func (p *Player) Box() core.Box {
	return core.Box{Center: p.Pos, Half: bodyHalf}
}

// update moves the player from input and ticks its timers.
func (p *Player) update(in core.InputFrame, tm *world.TileMap, ts, speed, dt float64) {
	p.Cooldown = math.Max(0, p.Cooldown-dt)
	p.Invuln = math.Max(0, p.Invuln-dt)
	p.Swing = math.Max(0, p.Swing-dt)

	dx, dy := in.Direction()
	if dx == 0 && dy == 0 {
		return
	}
	switch {
	case dx < 0:
		p.Facing = room.West
	case dx > 0:
		p.Facing = room.East
	case dy < 0:
		p.Facing = room.North
	default:
		p.Facing = room.South
	}

	step := core.Vec{X: float64(dx), Y: float64(dy)}.Normalize().Scale(speed * dt)
	p.Pos = moveBody(tm, ts, p.Pos, step, grounded)
}

// hurt applies damage unless the player is invulnerable. It reports whether
// the hit landed.
func (p *Player) hurt(dmg int, invuln float64) bool {
	if p.Invuln > 0 || dmg <= 0 {
		return false
	}
	p.HP -= dmg
	p.Invuln = invuln
	return true
}

// passable decides which tiles a body may overlap.
type passable func(tm *world.TileMap, x, y int) bool

func grounded(tm *world.TileMap, x, y int) bool {
	return tm.Walkable(x, y)
}

// phasing bodies drift through interior walls but never leave the room.
func phasing(tm *world.TileMap, x, y int) bool {
	return x > 0 && y > 0 && x < tm.Width-1 && y < tm.Height-1
}

// moveBody applies delta one axis at a time, dropping any axis that would
// push the body's box into a blocked tile.
func moveBody(tm *world.TileMap, ts float64, pos, delta core.Vec, ok passable) core.Vec {
	if delta.X != 0 {
		next := core.Vec{X: pos.X + delta.X, Y: pos.Y}
		if boxFits(tm, ts, next, ok) {
			pos = next
		}
	}
	if delta.Y != 0 {
		next := core.Vec{X: pos.X, Y: pos.Y + delta.Y}
		if boxFits(tm, ts, next, ok) {
			pos = next
		}
	}
	return pos
}

func boxFits(tm *world.TileMap, ts float64, c core.Vec, ok passable) bool {
	x0 := int(math.Floor((c.X - bodyHalf) / ts))
	x1 := int(math.Floor((c.X + bodyHalf - 0.001) / ts))
	y0 := int(math.Floor((c.Y - bodyHalf) / ts))
	y1 := int(math.Floor((c.Y + bodyHalf - 0.001) / ts))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !ok(tm, x, y) {
				return false
			}
		}
	}
	return true
}

// tileOf returns the tile under a pixel position.
func tileOf(pos core.Vec, ts float64) (int, int) {
	return int(math.Floor(pos.X / ts)), int(math.Floor(pos.Y / ts))
}
