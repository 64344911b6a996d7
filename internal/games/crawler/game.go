// Package crawler is the playable dungeon: a hero descends procedurally
// generated floors, fights the waves each room holds, and takes the stairs
// once the floor's Bone King is dead.
package crawler

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/encounter"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/world"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // Campaign completed
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Clear a fixed number of floors to win
	ModeEndless                  // Descend until out of lives
)

// messageTime is how long a HUD message stays up, in seconds.
const messageTime = 2.5

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the dungeon crawler.
type Game struct {
	mode GameMode

	world   *world.World
	tm      *world.TileMap
	player  *Player
	enemies []*Enemy
	pickups []*Pickup
	tracker *encounter.Tracker
	taken   mapset.Set[pickupKey]

	state        string
	score        int
	lives        int
	roomsCleared int
	tick         uint64
	doorArmed    bool // false until the player steps clear of the door they came in by
	showMap      bool
	message      string
	messageLeft  float64
	events       []string

	runtime    core.RuntimeConfig
	cfg        config.DungeonConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	preset     *config.DifficultyPreset // per-instance override of difficultyPreset

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "crawler_endless"
	}
	return "crawler"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Dungeon Crawler (Endless)"
	}
	return "Dungeon Crawler"
}

// Reset starts a new run on floor 1 with the runtime seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadDungeon(configPath)
	if err != nil {
		cfg = config.DefaultDungeonConfig()
	}
	preset := difficultyPreset
	if g.preset != nil {
		preset = *g.preset
	}
	config.ApplyDungeonPreset(&cfg, preset)
	g.ResetWithConfig(runtime, cfg)
}

// SetDifficulty overrides the package-wide preset for this game only.
// SSH sessions use it so players do not share a difficulty.
func (g *Game) SetDifficulty(preset string) {
	p := config.ParsePreset(preset)
	g.preset = &p
}

// ResetWithConfig starts a new run with an explicit configuration.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.DungeonConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.logger = config.NewLogger(cfg.Logging)

	g.minScreenW = 54
	g.minScreenH = 17
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	gen := floor.NewGenerator(cfg.ToParams(), floor.WithLogger(g.logger))
	g.world = world.New(gen, 1, runtime.Seed, cfg.ToWorldOptions())

	g.player = &Player{
		HP:     cfg.Player.MaxHP,
		MaxHP:  cfg.Player.MaxHP,
		Facing: room.South,
	}
	g.state = StatePlaying
	g.score = 0
	g.lives = cfg.Player.Lives
	g.roomsCleared = 0
	g.tick = 0
	g.showMap = false
	g.message = ""
	g.messageLeft = 0
	g.events = nil
	g.taken = mapset.New[pickupKey]()

	g.logger.Info("run started", "mode", g.ID(), "seed", runtime.Seed,
		"rooms", len(g.world.Layout.Rooms), "fallback", g.world.Layout.Fallback)
	g.enterRoom(0, room.DirNone)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if g.screenTooSmall {
		return g.result()
	}

	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return g.result()
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}
	if g.state != StatePlaying {
		return g.result()
	}

	g.tick++
	dt := g.runtime.DeltaTime()
	if g.messageLeft > 0 {
		g.messageLeft -= dt
	}

	if g.world.InTransition() {
		tr := *g.world.Transition
		if g.world.UpdateTransition(dt) == world.EventSwapRoom {
			g.enterRoom(tr.To, tr.Dir)
		}
		return g.result()
	}

	if in.Has(core.ActionMap) {
		g.showMap = !g.showMap
	}

	ts := g.world.TileSize()
	g.player.update(in, g.tm, ts, g.cfg.Player.Speed, dt)
	if in.Has(core.ActionAttack) && g.player.Cooldown <= 0 {
		g.attack()
	}

	g.updateEnemies(dt)
	if g.state != StatePlaying {
		return g.result()
	}

	g.updateEncounter()
	for _, p := range g.collectPickups() {
		if p.Price > 0 {
			g.say(fmt.Sprintf("Bought %s for %d", p.Kind, p.Price))
		} else {
			g.say("Picked up " + p.Kind.String())
		}
	}
	g.checkStairs()
	g.checkDoors()

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// say posts a HUD message and records it as a step event.
func (g *Game) say(msg string) {
	g.message = msg
	g.messageLeft = messageTime
	g.events = append(g.events, msg)
}

// enterRoom makes room i current, places the player as if they arrived
// travelling in dir, and starts the room's encounter if it has one.
func (g *Game) enterRoom(i int, dir room.Direction) {
	g.world.SwapToRoom(i)
	g.tm = g.world.BuildTileMap()

	x, y := g.world.PlayerSpawnPosition(dir)
	g.player.Pos = core.Vec{X: x, Y: y}
	g.enemies = nil
	g.tracker = nil
	g.doorArmed = false

	r := g.world.CurrentRoom()
	g.pickups = placePickups(r.Template, g.world.Current, g.taken.Has)
	if r.Cleared {
		return
	}

	dist := g.world.Layout.Distances(0)[g.world.Current]
	diff, ok := encounter.DifficultyFor(r.Type, g.world.FloorNumber, dist)
	points := len(r.Template.SpawnPoints)
	if !ok || points == 0 {
		g.world.MarkRoomCleared(g.world.Current)
		g.tm = g.world.BuildTileMap()
		return
	}

	def := encounter.SelectEncounter(diff, g.world.FloorNumber, points, g.encounterSeed(g.world.Current))
	g.tracker = encounter.NewTracker(def)
	g.logger.Debug("encounter", "room", g.world.Current, "type", r.Type, "difficulty", def.Difficulty,
		"waves", len(def.Waves), "enemies", def.EnemyCount())
	if r.Type == room.TypeBoss {
		g.say("The Bone King awakens!")
	}
	g.updateEncounter()
}

func (g *Game) encounterSeed(i int) uint64 {
	return g.world.Seed ^ (uint64(i)+1)*0xBF58476D1CE4E5B9
}

func (g *Game) factory() enemyFactory {
	return enemyFactory{cfg: g.cfg.Enemies, difficulty: g.difficulty, floor: g.world.FloorNumber}
}

// updateEncounter releases due waves and clears the room once the last
// enemy of the last wave dies.
func (g *Game) updateEncounter() {
	if g.tracker == nil {
		return
	}
	for g.tracker.ShouldSpawnNextWave(len(g.enemies)) {
		w, _ := g.tracker.Advance()
		g.spawnWave(w)
	}
	if g.tracker.IsEncounterComplete(len(g.enemies)) {
		g.clearRoom()
		return
	}
	// An encounter that produced nobody would otherwise seal the room forever.
	if !g.tracker.HasMoreWaves() && g.tracker.Spawned() == 0 {
		g.world.MarkRoomCleared(g.world.Current)
		g.tm = g.world.BuildTileMap()
		g.tracker = nil
	}
}

func (g *Game) spawnWave(w encounter.WaveDef) {
	r := g.world.CurrentRoom()
	spawns := encounter.InstantiateWave(w, r.Template.SpawnPoints, g.world.Current, g.world.Seed, g.world.TileSize())
	g.enemies = append(g.enemies, encounter.Dispatch[*Enemy](g.factory(), spawns)...)
}

func (g *Game) clearRoom() {
	r := g.world.CurrentRoom()
	g.world.MarkRoomCleared(g.world.Current)
	g.tm = g.world.BuildTileMap()
	g.tracker = nil
	g.roomsCleared++
	g.score += 50 * g.world.FloorNumber

	if r.Type == room.TypeBoss {
		g.say("The Bone King falls. The stairs are open")
	} else {
		g.say("Room cleared")
	}
	g.logger.Debug("room cleared", "floor", g.world.FloorNumber, "room", g.world.Current, "type", r.Type)
}

// attack swings at every enemy within reach.
func (g *Game) attack() {
	g.player.Cooldown = g.cfg.Player.AttackCooldown
	g.player.Swing = swingTime
	reach := g.cfg.Player.AttackRange + bodyHalf
	ts := g.world.TileSize()

	for _, e := range g.enemies {
		if !e.Alive() || e.Pos.Dist(g.player.Pos) > reach {
			continue
		}
		if e.hit(g.cfg.Player.AttackDamage, g.player.Pos, g.tm, ts) {
			g.score += e.Score
			if e.Kind == encounter.BoneKing {
				g.logger.Info("boss slain", "floor", g.world.FloorNumber)
			}
		}
	}
	g.pruneEnemies()
}

func (g *Game) pruneEnemies() {
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	clear(g.enemies[len(alive):])
	g.enemies = alive
}

// updateEnemies moves every enemy and applies contact damage.
func (g *Game) updateEnemies(dt float64) {
	ts := g.world.TileSize()
	for _, e := range g.enemies {
		e.update(g.player.Pos, g.tm, ts, dt)
		if e.Box().Intersects(g.player.Box()) && g.player.hurt(e.Damage, g.cfg.Player.Invulnerable) {
			if g.player.HP <= 0 {
				g.loseLife(e.Kind)
				return
			}
		}
	}
}

// loseLife restarts the current floor from its seed, or ends the run.
func (g *Game) loseLife(killer encounter.EnemyKind) {
	g.lives--
	g.logger.Info("player died", "floor", g.world.FloorNumber, "killer", killer, "lives", g.lives)
	if g.lives <= 0 {
		g.state = StateGameOver
		g.say("Slain by a " + killer.String())
		return
	}

	g.world.Reset()
	g.player.HP = g.player.MaxHP
	g.player.Invuln = 0
	g.enterRoom(0, room.DirNone)
	g.say(fmt.Sprintf("You wake at the top of floor %d", g.world.FloorNumber))
}

// stairsOpen reports whether the floor's boss, if any, is dead.
func (g *Game) stairsOpen() bool {
	b, ok := g.world.Layout.IndexOf(room.TypeBoss)
	return !ok || g.world.Layout.Rooms[b].Cleared
}

func (g *Game) checkStairs() {
	r := g.world.CurrentRoom()
	if r.Type != room.TypeExit || r.Template.PlayerSpawn == nil {
		return
	}
	tx, ty := tileOf(g.player.Pos, g.world.TileSize())
	if tx != r.Template.PlayerSpawn.X || ty != r.Template.PlayerSpawn.Y {
		return
	}
	if !g.stairsOpen() {
		if msg := "The stairs are sealed. Slay the Bone King"; g.message != msg || g.messageLeft <= 0 {
			g.say(msg)
		}
		return
	}
	g.descend()
}

func (g *Game) descend() {
	g.score += 100 * g.world.FloorNumber
	if g.mode == ModeCampaign && g.world.FloorNumber >= g.cfg.Campaign.Floors {
		g.state = StateWin
		g.say("You escaped the dungeon!")
		g.logger.Info("run won", "score", g.score)
		return
	}

	g.world.NextFloor()
	g.taken = mapset.New[pickupKey]()
	g.logger.Info("descended", "floor", g.world.FloorNumber, "seed", g.world.Seed,
		"rooms", len(g.world.Layout.Rooms), "fallback", g.world.Layout.Fallback)
	g.enterRoom(0, room.DirNone)
	g.say(fmt.Sprintf("Floor %d", g.world.FloorNumber))
}

// checkDoors starts a transition when the player touches an open door.
func (g *Game) checkDoors() {
	if g.tracker != nil {
		return
	}
	to, dir, ok := g.world.CheckDoorCollision(g.player.Pos.X, g.player.Pos.Y, g.tm)
	if !ok {
		g.doorArmed = true
		return
	}
	if g.doorArmed {
		g.world.StartTransition(to, dir)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// RunSummary describes the run for the history table.
func (g *Game) RunSummary() registry.RunSummary {
	return registry.RunSummary{
		Seed:         g.runtime.Seed,
		FloorReached: g.world.FloorNumber,
		RoomsCleared: g.roomsCleared,
		Score:        g.score,
		Mode:         g.ID(),
		Won:          g.state == StateWin,
	}
}

// Register the games with the registry
func init() {
	registry.Register("crawler", func() registry.Game {
		return New()
	})
	registry.Register("crawler_endless", func() registry.Game {
		return NewEndless()
	})
}
