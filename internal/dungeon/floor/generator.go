package floor

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
	"github.com/vovakirdan/tui-dungeon/internal/rng"
)

// FloorConfig bounds the size of a floor.
type FloorConfig struct {
	FloorNumber int
	MinRooms    int
	MaxRooms    int
}

// ConfigForFloor derives room-count bounds from the floor number.
// Floors grow by one room per level up to 12..15 rooms.
func ConfigForFloor(n int) FloorConfig {
	return FloorConfig{
		FloorNumber: n,
		MinRooms:    min(5+n, 12),
		MaxRooms:    min(9+n, 15),
	}
}

// Params tunes the generator.
type Params struct {
	MaxAttempts     int     // Attempts before falling back to the fixed floor
	ReseedStride    uint64  // Seed offset added per attempt
	StallLimit      int     // Consecutive dead frontier picks before giving up
	CorridorChance  float64 // Probability of trying a corridor for a new room
	TemplateRetries int     // Combat template picks before using the arena
}

// DefaultParams returns the standard generator tuning.
func DefaultParams() Params {
	return Params{
		MaxAttempts:     20,
		ReseedStride:    7919,
		StallLimit:      100,
		CorridorChance:  0.2,
		TemplateRetries: 10,
	}
}

// Generator produces floor layouts. It holds no per-floor state and may be
// reused for any number of floors.
type Generator struct {
	params Params
	logger *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report retries and fallbacks.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a generator. Zero-valued params fall back to defaults.
func NewGenerator(p Params, opts ...Option) *Generator {
	def := DefaultParams()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.ReseedStride == 0 {
		p.ReseedStride = def.ReseedStride
	}
	if p.StallLimit <= 0 {
		p.StallLimit = def.StallLimit
	}
	if p.CorridorChance < 0 || p.CorridorChance > 1 {
		p.CorridorChance = def.CorridorChance
	}
	if p.TemplateRetries <= 0 {
		p.TemplateRetries = def.TemplateRetries
	}

	g := &Generator{
		params: p,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params returns the generator's effective tuning.
func (g *Generator) Params() Params {
	return g.params
}

// openDoor is a door on a placed room that has no room behind it yet.
type openDoor struct {
	room int
	dir  room.Direction
}

// Generate builds the floor for floorNumber. It retries with perturbed seeds
// and falls back to a fixed linear floor, so it always returns a playable
// layout.
func (g *Generator) Generate(floorNumber int, seed uint64) *Layout {
	return g.generate(ConfigForFloor(floorNumber), seed)
}

func (g *Generator) generate(cfg FloorConfig, seed uint64) *Layout {
	floorNumber := cfg.FloorNumber
	for attempt := 0; attempt < g.params.MaxAttempts; attempt++ {
		s := seed + uint64(attempt)*g.params.ReseedStride
		if l, ok := g.TryGenerate(cfg, s); ok {
			l.Seed = seed
			l.Attempt = attempt
			return l
		}
		g.logger.Debug("floor attempt failed", "floor", floorNumber, "attempt", attempt, "seed", s)
	}

	g.logger.Warn("using fallback floor", "floor", floorNumber, "seed", seed, "attempts", g.params.MaxAttempts)
	return g.Fallback(floorNumber, seed)
}

// TryGenerate makes one generation attempt. It reports false when the
// attempt cannot satisfy the floor's constraints.
func (g *Generator) TryGenerate(cfg FloorConfig, seed uint64) (*Layout, bool) {
	r := rng.New(seed)
	target := r.Range(cfg.MinRooms, cfg.MaxRooms)

	l := &Layout{
		FloorNumber: cfg.FloorNumber,
		Seed:        seed,
	}
	occupied := mapset.New[GridPos]()

	start := room.Start()
	l.Rooms = append(l.Rooms, &PlacedRoom{
		Template:   start,
		Pos:        GridPos{},
		Type:       room.TypeStart,
		Cleared:    true,
		Discovered: true,
	})
	occupied.Put(GridPos{})

	var frontier []openDoor
	for _, d := range start.DoorDirections() {
		frontier = append(frontier, openDoor{room: 0, dir: d})
	}

	stall := 0
	for len(l.Rooms) < target && len(frontier) > 0 && stall < g.params.StallLimit {
		pick := r.Intn(len(frontier))
		door := frontier[pick]
		frontier = slices.Delete(frontier, pick, pick+1)

		pos := l.Rooms[door.room].Pos.Step(door.dir)
		if occupied.Has(pos) {
			stall++
			continue
		}

		need := door.dir.Opposite()
		tpl := g.pickTemplate(r, need)

		idx := len(l.Rooms)
		l.Rooms = append(l.Rooms, &PlacedRoom{
			Template: tpl,
			Pos:      pos,
			Type:     tpl.Type,
		})
		occupied.Put(pos)
		l.Connections = append(l.Connections, Connection{A: door.room, B: idx})

		for _, d := range tpl.DoorDirections() {
			if d != need {
				frontier = append(frontier, openDoor{room: idx, dir: d})
			}
		}
		stall = 0
	}

	if len(l.Rooms) < cfg.MinRooms {
		return nil, false
	}

	if !assignRoles(l) {
		return nil, false
	}

	if !l.Reachable() {
		return nil, false
	}
	return l, true
}

// pickTemplate chooses a template for a new room that must have a door on
// side need.
func (g *Generator) pickTemplate(r *rng.XorShift, need room.Direction) *room.Template {
	if r.Chance(g.params.CorridorChance) {
		t := corridorFor(need)
		if t.HasDoor(need) {
			return t
		}
	}

	combats := room.CombatTemplates()
	for i := 0; i < g.params.TemplateRetries; i++ {
		t := combats[r.Intn(len(combats))]()
		if t.HasDoor(need) {
			return t
		}
	}
	return room.CombatArena()
}

// corridorFor returns the corridor running along the axis of need.
func corridorFor(need room.Direction) *room.Template {
	if need.Horizontal() {
		return room.CorridorHorizontal()
	}
	return room.CorridorVertical()
}

// roleOrder is the order in which dead ends receive special rooms,
// farthest first.
var roleOrder = []room.RoomType{
	room.TypeBoss,
	room.TypeExit,
	room.TypeTreasure,
	room.TypeShop,
}

// assignRoles turns dead-end rooms into special rooms. It reports false when
// the floor has no room for both a boss and an exit.
func assignRoles(l *Layout) bool {
	var deadEnds []int
	for i := 1; i < len(l.Rooms); i++ {
		if l.Degree(i) == 1 {
			deadEnds = append(deadEnds, i)
		}
	}
	if len(deadEnds) < 2 {
		return false
	}

	dist := l.Distances(0)
	slices.SortStableFunc(deadEnds, func(a, b int) int {
		return dist[b] - dist[a]
	})

	for k, i := range deadEnds {
		if k >= len(roleOrder) {
			break
		}
		rt := roleOrder[k]
		door := l.DirectionTo(i, l.Neighbors(i)[0])
		l.Rooms[i].Template = room.ForRole(rt, door)
		l.Rooms[i].Type = rt
	}
	return true
}

// Fallback returns the fixed five-room floor used when generation keeps
// failing: start, two combat rooms, boss and exit in a north-south chain.
func (g *Generator) Fallback(floorNumber int, seed uint64) *Layout {
	l := &Layout{
		FloorNumber: floorNumber,
		Seed:        seed,
		Attempt:     g.params.MaxAttempts,
		Fallback:    true,
	}
	l.Rooms = []*PlacedRoom{
		{Template: room.Start(), Pos: GridPos{0, 0}, Type: room.TypeStart, Cleared: true, Discovered: true},
		{Template: room.CombatCrossroads(), Pos: GridPos{0, 1}, Type: room.TypeCombat},
		{Template: room.CombatCrossroads(), Pos: GridPos{0, 2}, Type: room.TypeCombat},
		{Template: room.Boss(room.North, room.South), Pos: GridPos{0, 3}, Type: room.TypeBoss},
		{Template: room.Exit(room.North), Pos: GridPos{0, 4}, Type: room.TypeExit},
	}
	l.Connections = []Connection{
		{A: 0, B: 1},
		{A: 1, B: 2},
		{A: 2, B: 3},
		{A: 3, B: 4},
	}
	return l
}
