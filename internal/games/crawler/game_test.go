package crawler

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/encounter"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/world"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

func testRuntime(seed uint64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed}
}

func newTestGame(seed uint64) *Game {
	g := New()
	g.ResetWithConfig(testRuntime(seed), config.DefaultDungeonConfig())
	return g
}

// fixedGame swaps in the fixed five-room chain:
// start, crossroads, crossroads, boss, exit, stacked north to south.
func fixedGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(1)
	g.world.Layout = floor.NewGenerator(floor.DefaultParams()).Fallback(1, 1)
	g.enterRoom(0, room.DirNone)
	return g
}

func killAll(g *Game) {
	for _, e := range g.enemies {
		e.HP = 0
	}
	g.pruneEnemies()
	g.updateEncounter()
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i < 60:
			inputs[i].Set(core.ActionDown)
		case i%20 < 10:
			inputs[i].Set(core.ActionLeft)
		default:
			inputs[i].Set(core.ActionRight)
		}
		if i%5 == 0 {
			inputs[i].Set(core.ActionAttack)
		}
	}

	run := func() Snapshot {
		g := newTestGame(12345)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Room != snap2.Room || snap1.PlayerX != snap2.PlayerX || snap1.PlayerY != snap2.PlayerY {
		t.Errorf("Determinism failed: positions differ: %+v vs %+v", snap1, snap2)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(99)

	if g.world.Current != 0 {
		t.Errorf("Current = %d, expected start room 0", g.world.Current)
	}
	if g.lives != 3 || g.player.HP != 6 || g.player.MaxHP != 6 {
		t.Errorf("lives/HP = %d/%d/%d, expected 3/6/6", g.lives, g.player.HP, g.player.MaxHP)
	}
	if g.tracker != nil || len(g.enemies) != 0 {
		t.Error("start room should have no encounter")
	}
	if g.tm.Count(room.DoorOpen) != g.world.Layout.Degree(0) {
		t.Errorf("open doors = %d, expected %d", g.tm.Count(room.DoorOpen), g.world.Layout.Degree(0))
	}
	// Spawn marker at (10, 5).
	if g.player.Pos != (core.Vec{X: 168, Y: 88}) {
		t.Errorf("player at %v, expected {168 88}", g.player.Pos)
	}
	if s := g.State(); s.GameOver || s.Paused || s.Score != 0 {
		t.Errorf("State() = %+v, expected fresh run", s)
	}
}

func TestSetDifficultyPerGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	hard := New()
	hard.SetDifficulty("hard")
	hard.Reset(testRuntime(5))
	if hard.lives != 2 || hard.player.MaxHP != 4 {
		t.Errorf("hard lives/HP = %d/%d, expected 2/4", hard.lives, hard.player.MaxHP)
	}

	plain := New()
	plain.Reset(testRuntime(5))
	if plain.lives != 3 || plain.player.MaxHP != 6 {
		t.Errorf("default lives/HP = %d/%d, expected 3/6", plain.lives, plain.player.MaxHP)
	}

	if _, ok := registry.Game(hard).(registry.Tunable); !ok {
		t.Error("crawler should be tunable")
	}
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{"crawler", "crawler_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
		if _, ok := g.(registry.RunReporter); !ok {
			t.Errorf("%q does not report runs", id)
		}
	}
	if New().Title() == NewEndless().Title() {
		t.Error("campaign and endless should have distinct titles")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(5)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	if !g.Step(pause).State.Paused {
		t.Fatal("expected paused after P")
	}
	tick := g.tick
	g.Step(core.NewInputFrame())
	if g.tick != tick {
		t.Error("paused game should not advance")
	}
	if g.Step(pause).State.Paused {
		t.Error("expected unpaused after second P")
	}
}

func TestCombatRoomEncounter(t *testing.T) {
	g := fixedGame(t)
	g.enterRoom(1, room.South)

	if g.tracker == nil {
		t.Fatal("combat room should start an encounter")
	}
	if g.tracker.Def().Difficulty != encounter.Easy {
		t.Errorf("difficulty = %v, expected Easy one hop from start on floor 1", g.tracker.Def().Difficulty)
	}
	if len(g.enemies) < 2 {
		t.Errorf("enemies = %d, expected at least 2", len(g.enemies))
	}
	if n := g.tm.Count(room.DoorOpen); n != 0 {
		t.Errorf("open doors during a fight = %d, expected 0", n)
	}
	// Entered travelling south: 1.5 tiles below the north door at (10, 0).
	if g.player.Pos != (core.Vec{X: 168, Y: 32}) {
		t.Errorf("player at %v, expected {168 32}", g.player.Pos)
	}

	killAll(g)

	if g.tracker != nil {
		t.Error("encounter should end when every enemy is dead")
	}
	if !g.world.Layout.Rooms[1].Cleared {
		t.Error("room should be marked cleared")
	}
	if g.roomsCleared != 1 || g.score != 50 {
		t.Errorf("roomsCleared/score = %d/%d, expected 1/50", g.roomsCleared, g.score)
	}
	if n := g.tm.Count(room.DoorOpen); n != 2 {
		t.Errorf("open doors after clearing = %d, expected 2", n)
	}

	// Coming back to a cleared room does not restart the fight.
	g.enterRoom(1, room.North)
	if g.tracker != nil || len(g.enemies) != 0 {
		t.Error("cleared room should stay empty")
	}
}

func TestBossAndStairs(t *testing.T) {
	g := fixedGame(t)

	g.enterRoom(4, room.DirNone)
	g.checkStairs()
	if g.world.FloorNumber != 1 {
		t.Fatal("stairs should stay sealed while the boss lives")
	}
	if !strings.Contains(g.message, "sealed") {
		t.Errorf("message = %q, expected a sealed-stairs hint", g.message)
	}

	g.enterRoom(3, room.South)
	if len(g.enemies) != 1 || g.enemies[0].Kind != encounter.BoneKing {
		t.Fatalf("boss room enemies = %d, expected a lone Bone King", len(g.enemies))
	}
	killAll(g)
	if !g.stairsOpen() {
		t.Fatal("stairs should open once the boss room is cleared")
	}

	g.enterRoom(4, room.DirNone)
	g.checkStairs()
	if g.world.FloorNumber != 2 {
		t.Errorf("FloorNumber = %d, expected 2 after taking the stairs", g.world.FloorNumber)
	}
	if g.world.Current != 0 {
		t.Errorf("Current = %d, expected the new floor's start room", g.world.Current)
	}
}

func TestCampaignWin(t *testing.T) {
	g := fixedGame(t)
	g.cfg.Campaign.Floors = 1
	g.world.MarkRoomCleared(3)

	g.enterRoom(4, room.DirNone)
	g.checkStairs()

	s := g.State()
	if !s.GameOver || !s.Won {
		t.Errorf("State() = %+v, expected a won run", s)
	}
	if sum := g.RunSummary(); !sum.Won || sum.FloorReached != 1 || sum.Mode != "crawler" {
		t.Errorf("RunSummary() = %+v", sum)
	}
}

func TestEndlessKeepsDescending(t *testing.T) {
	g := NewEndless()
	g.ResetWithConfig(testRuntime(1), config.DefaultDungeonConfig())
	g.cfg.Campaign.Floors = 1
	g.world.Layout = floor.NewGenerator(floor.DefaultParams()).Fallback(1, 1)
	g.world.MarkRoomCleared(3)

	g.enterRoom(4, room.DirNone)
	g.checkStairs()

	if g.State().GameOver {
		t.Error("endless mode should never be won")
	}
	if g.world.FloorNumber != 2 {
		t.Errorf("FloorNumber = %d, expected 2", g.world.FloorNumber)
	}
}

func TestDeathResetsFloor(t *testing.T) {
	g := newTestGame(77)
	seed := g.world.Seed
	g.player.HP = 1
	g.enemies = []*Enemy{g.factory().Skeleton(g.player.Pos.X, g.player.Pos.Y, 1)}

	g.updateEnemies(0)

	if g.lives != 2 {
		t.Errorf("lives = %d, expected 2", g.lives)
	}
	if g.player.HP != g.player.MaxHP {
		t.Errorf("HP = %d, expected full after respawn", g.player.HP)
	}
	if g.world.Current != 0 || g.world.Seed != seed || g.world.FloorNumber != 1 {
		t.Error("death should restart the same floor from its start room")
	}
	if g.State().GameOver {
		t.Error("run should continue while lives remain")
	}

	g.lives = 1
	g.player.HP = 1
	g.player.Invuln = 0
	g.enemies = []*Enemy{g.factory().Ghost(g.player.Pos.X, g.player.Pos.Y, 1)}
	g.updateEnemies(0)
	if !g.State().GameOver || g.State().Won {
		t.Errorf("State() = %+v, expected game over", g.State())
	}
}

func TestDeathKeepsTakenPickups(t *testing.T) {
	g := newTestGame(77)
	none := func(pickupKey) bool { return false }
	loot := -1
	for i, r := range g.world.Layout.Rooms {
		if len(placePickups(r.Template, i, none)) > 0 {
			loot = i
			break
		}
	}
	key := pickupKey{Room: loot, Point: 0}
	g.taken.Put(key)

	g.loseLife(encounter.Skeleton)

	if !g.taken.Has(key) {
		t.Fatal("taken pickups should survive a death on the same floor")
	}
	if loot >= 0 {
		g.enterRoom(loot, room.DirNone)
		for _, p := range g.pickups {
			if p.key == key {
				t.Errorf("pickup %+v respawned after death", key)
			}
		}
	}

	g.descend()
	if g.taken.Has(key) {
		t.Error("a new floor should start with no taken pickups")
	}
}

func TestInvulnerabilityAfterHit(t *testing.T) {
	g := newTestGame(3)
	g.enemies = []*Enemy{g.factory().Skeleton(g.player.Pos.X, g.player.Pos.Y, 1)}

	g.updateEnemies(0)
	g.updateEnemies(0)

	if g.player.HP != 5 {
		t.Errorf("HP = %d, expected one hit to land during invulnerability", g.player.HP)
	}
}

func TestAttack(t *testing.T) {
	g := newTestGame(3)
	e := g.factory().Skeleton(g.player.Pos.X+10, g.player.Pos.Y, 1)
	far := g.factory().Skeleton(g.player.Pos.X+100, g.player.Pos.Y, 2)
	g.enemies = []*Enemy{e, far}

	g.attack()
	if e.HP != 1 {
		t.Errorf("HP = %d, expected 1 after one hit", e.HP)
	}
	if e.Pos.X <= g.player.Pos.X+10 {
		t.Error("hit should knock the enemy back")
	}
	if far.HP != 3 {
		t.Error("enemy out of reach should be untouched")
	}
	if g.player.Cooldown <= 0 {
		t.Error("attack should start the cooldown")
	}

	g.attack()
	if len(g.enemies) != 1 || g.enemies[0] != far {
		t.Errorf("enemies = %d, expected the dead one removed", len(g.enemies))
	}
	if g.score != 10 {
		t.Errorf("score = %d, expected 10", g.score)
	}
}

func TestDoorTransition(t *testing.T) {
	g := fixedGame(t)
	idle := core.NewInputFrame()

	g.Step(idle) // away from any door
	// Tile (10, 9), next to the south door.
	g.player.Pos = core.Vec{X: 168, Y: 152}
	g.Step(idle)
	if !g.world.InTransition() {
		t.Fatal("touching an open door should start a transition")
	}

	for i := 0; i < 60 && g.world.Current == 0; i++ {
		g.Step(idle)
	}
	if g.world.Current != 1 {
		t.Fatalf("Current = %d, expected 1 after the fade", g.world.Current)
	}
	if !g.world.Layout.Rooms[1].Discovered {
		t.Error("entered room should be discovered")
	}
	if g.tracker == nil {
		t.Error("entering the combat room should start its encounter")
	}
}

func TestDoorNeedsArming(t *testing.T) {
	g := fixedGame(t)
	g.world.MarkRoomCleared(1)
	// Arriving travelling north leaves the player next to room 1's south door.
	g.enterRoom(1, room.North)

	g.checkDoors()
	if g.world.InTransition() {
		t.Error("the door just walked through should not fire again immediately")
	}
}

func TestPlacePickups(t *testing.T) {
	none := func(pickupKey) bool { return false }

	treasure := placePickups(room.Treasure(room.North), 2, none)
	if len(treasure) != 7 {
		t.Fatalf("treasure pickups = %d, expected 7", len(treasure))
	}
	hearts := 0
	for _, p := range treasure {
		if p.Kind == PickupHeart {
			hearts++
		}
		if p.Price != 0 {
			t.Error("treasure should be free")
		}
	}
	if hearts != 1 {
		t.Errorf("hearts = %d, expected 1", hearts)
	}

	shop := placePickups(room.Shop(room.North), 3, none)
	if len(shop) != 3 {
		t.Fatalf("shop pickups = %d, expected 3", len(shop))
	}
	for _, p := range shop {
		if p.Price <= 0 {
			t.Errorf("%s has no price", p.Kind)
		}
	}

	taken := func(k pickupKey) bool { return k.Point == 0 }
	if got := placePickups(room.Shop(room.North), 3, taken); len(got) != 2 {
		t.Errorf("pickups after taking one = %d, expected 2", len(got))
	}
	if got := placePickups(room.CombatArena(), 1, none); len(got) != 0 {
		t.Errorf("combat room pickups = %d, expected 0", len(got))
	}
}

func TestCollectPickups(t *testing.T) {
	g := newTestGame(1)
	tx, ty := tileOf(g.player.Pos, g.world.TileSize())
	g.pickups = []*Pickup{
		{Kind: PickupGold, X: tx, Y: ty, key: pickupKey{0, 0}},
		{Kind: PickupAnkh, X: tx, Y: ty, Price: 200, key: pickupKey{0, 1}},
	}

	got := g.collectPickups()
	if len(got) != 1 || got[0].Kind != PickupGold {
		t.Fatalf("collected %d, expected only the gold", len(got))
	}
	if g.score != goldValue {
		t.Errorf("score = %d, expected %d", g.score, goldValue)
	}
	if !g.taken.Has(pickupKey{0, 0}) {
		t.Error("taken gold should be remembered")
	}

	g.score = 250
	if got := g.collectPickups(); len(got) != 1 || g.lives != 4 || g.score != 50 {
		t.Errorf("buying the ankh: collected %d, lives %d, score %d", len(got), g.lives, g.score)
	}
}

func TestEnemyFactory(t *testing.T) {
	cfg := config.DefaultDungeonConfig()
	dm := config.NewDifficultyManager(cfg.Difficulty)

	f := enemyFactory{cfg: cfg.Enemies, difficulty: dm, floor: 1}
	s := f.Skeleton(10, 10, 1)
	if s.HP != 3 || s.Damage != 1 || s.Speed != 40 || s.Score != 10 {
		t.Errorf("floor 1 skeleton = %+v", s)
	}

	deep := enemyFactory{cfg: cfg.Enemies, difficulty: dm, floor: 10}
	if k := deep.BoneKing(0, 0, 1); k.HP != 48 || k.Damage != 3 {
		t.Errorf("floor 10 Bone King HP/damage = %d/%d, expected 48/3", k.HP, k.Damage)
	}

	cfg.Enemies.DamageMultiplier = 2
	harsh := enemyFactory{cfg: cfg.Enemies, difficulty: dm, floor: 1}
	if g := harsh.Ghost(0, 0, 1); g.Damage != 2 {
		t.Errorf("ghost damage = %d, expected 2 with a 2x multiplier", g.Damage)
	}

	a, b := f.Slime(40, 56), f.Slime(40, 56)
	if a.drift != b.drift {
		t.Error("slimes at the same spot should wander alike")
	}
}

func TestMoveBody(t *testing.T) {
	tm := world.NewTileMap(room.Start())
	pos := core.Vec{X: 24, Y: 24}

	if got := moveBody(tm, 16, pos, core.Vec{X: -10}, grounded); got != pos {
		t.Errorf("moving into the west wall: %v, expected %v", got, pos)
	}
	if got := moveBody(tm, 16, pos, core.Vec{X: -10, Y: 10}, grounded); got != (core.Vec{X: 24, Y: 34}) {
		t.Errorf("sliding along the wall: %v, expected {24 34}", got)
	}
	if got := moveBody(tm, 16, core.Vec{X: 24, Y: 40}, core.Vec{X: -10}, phasing); got.X != 24 {
		t.Error("phasing bodies still stop at the outer wall")
	}
}

func TestSprite(t *testing.T) {
	seen := map[rune]room.TileKind{}
	for _, k := range []room.TileKind{room.Floor, room.Wall, room.WallTop, room.DoorClosed, room.DoorOpen, room.Pit} {
		r, _ := Sprite(k)
		if prev, dup := seen[r]; dup {
			t.Errorf("%v and %v share glyph %q", prev, k, r)
		}
		seen[r] = k
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(42)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"@", "Floor 1/5", "Score 0", "Lives 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.showMap = true
	g.state = StateGameOver
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.ResetWithConfig(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30, Seed: 1}, config.DefaultDungeonConfig())
	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestPlayerStaysOnWalkableGround(t *testing.T) {
	actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionAttack}

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		steps := rapid.SliceOfN(rapid.IntRange(0, len(actions)-1), 50, 200).Draw(t, "steps")

		g := newTestGame(seed)
		for i, s := range steps {
			in := core.NewInputFrame()
			in.Set(actions[s])
			g.Step(in)
			if g.State().GameOver {
				return
			}
			tx, ty := tileOf(g.player.Pos, g.world.TileSize())
			if !g.tm.Walkable(tx, ty) {
				t.Fatalf("step %d: player on %v at tile (%d,%d) in room %d",
					i, g.tm.At(tx, ty), tx, ty, g.world.Current)
			}
		}
	})
}
