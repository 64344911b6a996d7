// Package room describes the static geometry of dungeon rooms: the tile
// kinds a room is made of, the doors it exposes, where enemies and the player
// may appear, and the fixed catalog of templates every floor is assembled from.
package room

// TileKind is the kind of a single room tile.
type TileKind uint8

const (
	Floor TileKind = iota
	Wall
	WallTop // Wall cap drawn above walkable ground
	DoorClosed
	DoorOpen
	Pit
)

// String returns the name of the tile kind.
func (k TileKind) String() string {
	switch k {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	case WallTop:
		return "WallTop"
	case DoorClosed:
		return "DoorClosed"
	case DoorOpen:
		return "DoorOpen"
	case Pit:
		return "Pit"
	default:
		return "Unknown"
	}
}

// Solid reports whether the tile blocks movement.
func (k TileKind) Solid() bool {
	return k == Wall || k == WallTop || k == DoorClosed
}

// Walkable reports whether a grounded walker may stand on the tile.
// Pits are not solid (flyers cross them) but nobody stands in them.
func (k TileKind) Walkable() bool {
	return k == Floor || k == DoorOpen
}

// wallLike reports whether the tile counts as wall mass for the ledge pass.
func (k TileKind) wallLike() bool {
	return k == Wall || k == WallTop || k == DoorClosed
}

// Direction is a cardinal direction. The zero value means "no direction".
type Direction uint8

const (
	DirNone Direction = iota
	North
	South
	East
	West
)

// Directions lists the cardinal directions in tie-break priority order.
var Directions = []Direction{North, South, West, East}

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "None"
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return DirNone
	}
}

// Delta returns the one-step offset for this direction.
// North decreases Y, South increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Horizontal reports whether the direction lies on the east-west axis.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// RoomType tags the role a room plays on a floor.
type RoomType uint8

const (
	TypeStart RoomType = iota
	TypeCombat
	TypeTreasure
	TypeShop
	TypeBoss
	TypeExit
	TypeCorridor
)

// String returns the name of the room type.
func (t RoomType) String() string {
	switch t {
	case TypeStart:
		return "Start"
	case TypeCombat:
		return "Combat"
	case TypeTreasure:
		return "Treasure"
	case TypeShop:
		return "Shop"
	case TypeBoss:
		return "Boss"
	case TypeExit:
		return "Exit"
	case TypeCorridor:
		return "Corridor"
	default:
		return "Unknown"
	}
}

// Point is a tile coordinate inside a room.
type Point struct {
	X, Y int
}

// SpawnPoint is a tile where an enemy or pickup may be placed.
// Points sharing a Group are meant to be used together.
type SpawnPoint struct {
	X, Y  int
	Group int
}

// EntryPoint is a doorway tile and the side of the room it opens onto.
type EntryPoint struct {
	X, Y int
	Dir  Direction
}
