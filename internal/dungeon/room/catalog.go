package room

import "fmt"

// Room geometry is authored here and nowhere else: the floor generator only
// arranges these templates, it never synthesizes geometry of its own.

var startRows = []string{
	"WWWWWWWWWWWWWWWWWWWWW",
	"W...................W",
	"W...................W",
	"W...................W",
	"W...................W",
	"W.........P.........W",
	"W...................W",
	"W...................W",
	"W...................W",
	"W...................W",
	"WWWWWWWWWWDWWWWWWWWWW",
}

var arenaRows = []string{
	"WWWWWWWWWWDWWWWWWWWWW",
	"W...................W",
	"W...S...........S...W",
	"W.........1.........W",
	"W...................W",
	"D...................D",
	"W...................W",
	"W.........1.........W",
	"W...S...........S...W",
	"W...................W",
	"WWWWWWWWWWDWWWWWWWWWW",
}

var pillarsRows = []string{
	"WWWWWWWWWWDWWWWWWWWWW",
	"W...................W",
	"W..S.............S..W",
	"W....W....W....W....W",
	"W...................W",
	"W.......1...1.......D",
	"W...................W",
	"W....W....W....W....W",
	"W..S.............S..W",
	"W...................W",
	"WWWWWWWWWWDWWWWWWWWWW",
}

var lShapeRows = []string{
	"WWWWWWWWWWWWWWWWWWWWW",
	"W..........WWWWWWWWWW",
	"W..S.......WWWWWWWWWW",
	"W.......S..WWWWWWWWWW",
	"W..........WWWWWWWWWW",
	"D..........WWWWWWWWWW",
	"W...................W",
	"W...................W",
	"W....1........S...S.W",
	"W...................W",
	"WWWWWWWWWWDWWWWWWWWWW",
}

var hallRows = []string{
	"WWWWWWWWWWDWWWWWWWWWW",
	"W....S.........S....W",
	"W...................W",
	"W..#####.....#####..W",
	"W...................W",
	"D...................D",
	"W...................W",
	"W..#####.....#####..W",
	"W.........2.........W",
	"W....S.........S....W",
	"WWWWWWWWWWWWWWWWWWWWW",
}

var crossroadsRows = []string{
	"WWWWWWWWWWDWWWWWWWWWW",
	"W...................W",
	"W..S......1......S..W",
	"W...................W",
	"W.......WWWWW.......W",
	"W.......WWWWW.......W",
	"W.......WWWWW.......W",
	"W...................W",
	"W..S......1......S..W",
	"W...................W",
	"WWWWWWWWWWDWWWWWWWWWW",
}

var corridorHRows = []string{
	"WWWWWWWWWWWWWWWWWWWWW",
	"WWWWWWWWWWWWWWWWWWWWW",
	"W...................W",
	"D.....S.......S.....D",
	"W...................W",
	"WWWWWWWWWWWWWWWWWWWWW",
	"WWWWWWWWWWWWWWWWWWWWW",
}

var corridorVRows = []string{
	"WWWWWDWWWWW",
	"WWWW...WWWW",
	"WWWW...WWWW",
	"WWWW.S.WWWW",
	"WWWW...WWWW",
	"WWWW...WWWW",
	"WWWW...WWWW",
	"WWWW.S.WWWW",
	"WWWW...WWWW",
	"WWWW...WWWW",
	"WWWWWDWWWWW",
}

// Special rooms are authored without doors; doors are punched into the
// middle of whichever edges face their neighbours.

var treasureRows = []string{
	"WWWWWWWWWWWWWWW",
	"W.............W",
	"W.............W",
	"W.....SSS.....W",
	"W.....S0S.....W",
	"W......S......W",
	"W.............W",
	"W.............W",
	"WWWWWWWWWWWWWWW",
}

var bossRows = []string{
	"WWWWWWWWWWWWWWWWWWWWWWWWW",
	"W.......................W",
	"W.......................W",
	"W....#.............#....W",
	"W.......................W",
	"W.......................W",
	"W...........S...........W",
	"W.......................W",
	"W.......................W",
	"W....#.............#....W",
	"W.......................W",
	"W.......................W",
	"WWWWWWWWWWWWWWWWWWWWWWWWW",
}

var shopRows = []string{
	"WWWWWWWWWWWWWWWWW",
	"W...............W",
	"W...WWWWWWWWW...W",
	"W....S..S..S....W",
	"W...............W",
	"W...............W",
	"W.......P.......W",
	"W...............W",
	"WWWWWWWWWWWWWWWWW",
}

var exitRows = []string{
	"WWWWWWWWWWWWWWW",
	"W.............W",
	"W.............W",
	"W.............W",
	"W......E......W",
	"W.............W",
	"W.............W",
	"W.............W",
	"WWWWWWWWWWWWWWW",
}

// Parsed once at startup; a malformed entry panics before any floor is built.
var (
	startTemplate      = MustParse("start", startRows, TypeStart)
	arenaTemplate      = MustParse("arena", arenaRows, TypeCombat)
	pillarsTemplate    = MustParse("pillars", pillarsRows, TypeCombat)
	lShapeTemplate     = MustParse("l-shape", lShapeRows, TypeCombat)
	hallTemplate       = MustParse("hall", hallRows, TypeCombat)
	crossroadsTemplate = MustParse("crossroads", crossroadsRows, TypeCombat)
	corridorHTemplate  = MustParse("corridor-h", corridorHRows, TypeCorridor)
	corridorVTemplate  = MustParse("corridor-v", corridorVRows, TypeCorridor)

	treasureShell = MustParse("treasure", treasureRows, TypeTreasure)
	bossShell     = MustParse("boss", bossRows, TypeBoss)
	shopShell     = MustParse("shop", shopRows, TypeShop)
	exitShell     = MustParse("exit", exitRows, TypeExit)
)

// specialShells holds the doorless special rooms that withDoors opens up.
var specialShells = []*Template{treasureShell, bossShell, shopShell, exitShell}

// Start returns the entry room: open floor, one door to the south.
func Start() *Template { return startTemplate.Clone() }

// CombatArena returns the open arena with a door on every side. It is the
// fallback whenever no other combat room offers the door a connection needs.
func CombatArena() *Template { return arenaTemplate.Clone() }

// CombatPillars returns a hall broken up by pillars, doors north, south and east.
func CombatPillars() *Template { return pillarsTemplate.Clone() }

// CombatLShape returns an L-shaped room, doors south and west.
func CombatLShape() *Template { return lShapeTemplate.Clone() }

// CombatHall returns a hall with pit strips, doors north, east and west.
func CombatHall() *Template { return hallTemplate.Clone() }

// CombatCrossroads returns a room with a central block, doors north and south.
func CombatCrossroads() *Template { return crossroadsTemplate.Clone() }

// CorridorHorizontal returns a narrow east-west passage.
func CorridorHorizontal() *Template { return corridorHTemplate.Clone() }

// CorridorVertical returns a narrow north-south passage.
func CorridorVertical() *Template { return corridorVTemplate.Clone() }

// CombatTemplates returns the combat room factories, in selection order.
func CombatTemplates() []func() *Template {
	return []func() *Template{
		CombatArena,
		CombatPillars,
		CombatLShape,
		CombatHall,
		CombatCrossroads,
	}
}

// CorridorTemplates returns the corridor factories.
func CorridorTemplates() []func() *Template {
	return []func() *Template{CorridorHorizontal, CorridorVertical}
}

// Treasure returns the reward room with doors on the given sides.
func Treasure(doors ...Direction) *Template {
	return MustParse("treasure", withDoors(treasureRows, doors), TypeTreasure)
}

// Boss returns the boss arena with doors on the given sides.
func Boss(doors ...Direction) *Template {
	return MustParse("boss", withDoors(bossRows, doors), TypeBoss)
}

// Shop returns the shop with doors on the given sides.
func Shop(doors ...Direction) *Template {
	return MustParse("shop", withDoors(shopRows, doors), TypeShop)
}

// Exit returns the stairs room with doors on the given sides.
func Exit(doors ...Direction) *Template {
	return MustParse("exit", withDoors(exitRows, doors), TypeExit)
}

// ForRole returns a fresh special-room template for the given room type.
func ForRole(rt RoomType, doors ...Direction) *Template {
	switch rt {
	case TypeTreasure:
		return Treasure(doors...)
	case TypeBoss:
		return Boss(doors...)
	case TypeShop:
		return Shop(doors...)
	case TypeExit:
		return Exit(doors...)
	case TypeStart:
		return Start()
	case TypeCorridor:
		return CorridorHorizontal()
	default:
		return CombatArena()
	}
}

// Catalog returns one instance of every template, special rooms shown with a
// single north door.
func Catalog() []*Template {
	return []*Template{
		Start(),
		CombatArena(),
		CombatPillars(),
		CombatLShape(),
		CombatHall(),
		CombatCrossroads(),
		CorridorHorizontal(),
		CorridorVertical(),
		Treasure(North),
		Boss(North),
		Shop(North),
		Exit(North),
	}
}

// withDoors copies rows and replaces the middle tile of each requested edge
// with a door.
func withDoors(rows []string, doors []Direction) []string {
	grid := make([][]byte, len(rows))
	for i, r := range rows {
		grid[i] = []byte(r)
	}
	h := len(grid)
	w := len(grid[0])
	for _, d := range doors {
		switch d {
		case North:
			grid[0][w/2] = 'D'
		case South:
			grid[h-1][w/2] = 'D'
		case West:
			grid[h/2][0] = 'D'
		case East:
			grid[h/2][w-1] = 'D'
		}
	}
	out := make([]string, h)
	for i, r := range grid {
		out[i] = string(r)
	}
	return out
}

// Validate checks the authored catalog against the rules the generator
// depends on. It returns the first violation found.
func Validate() error {
	for _, t := range Catalog() {
		if len(t.Tiles) != t.Width*t.Height {
			return fmt.Errorf("room %s: %d tiles for %dx%d", t.Name, len(t.Tiles), t.Width, t.Height)
		}
		doors := len(t.DoorDirections())
		switch t.Type {
		case TypeStart, TypeTreasure, TypeBoss, TypeShop, TypeExit:
			if doors != 1 {
				return fmt.Errorf("room %s: want 1 door, got %d", t.Name, doors)
			}
		case TypeCombat:
			if doors < 2 || doors > 4 {
				return fmt.Errorf("room %s: want 2-4 doors, got %d", t.Name, doors)
			}
		case TypeCorridor:
			if doors != 2 {
				return fmt.Errorf("room %s: want 2 doors, got %d", t.Name, doors)
			}
		}
		for _, e := range t.EntryPoints {
			if e.X != 0 && e.Y != 0 && e.X != t.Width-1 && e.Y != t.Height-1 {
				return fmt.Errorf("room %s: door at (%d,%d) is not on an edge", t.Name, e.X, e.Y)
			}
		}
	}
	if !startTemplate.HasDoor(South) {
		return fmt.Errorf("room start: missing south door")
	}
	if !arenaTemplate.HasDoor(North) || !arenaTemplate.HasDoor(South) ||
		!arenaTemplate.HasDoor(East) || !arenaTemplate.HasDoor(West) {
		return fmt.Errorf("room arena: must open on every side")
	}
	for _, t := range specialShells {
		if n := len(t.DoorDirections()); n != 0 {
			return fmt.Errorf("room %s: authored with %d doors, want none", t.Name, n)
		}
	}
	return nil
}
