package crawler

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

// PickupKind is what lies on the floor of a treasure room or shop.
type PickupKind uint8

const (
	PickupGold PickupKind = iota
	PickupHeart
	PickupPotion // shop: full heal
	PickupVessel // shop: +1 max HP
	PickupAnkh   // shop: +1 life
)

// Shop prices, paid from the score.
var shopPrices = map[PickupKind]int{
	PickupPotion: 50,
	PickupVessel: 120,
	PickupAnkh:   200,
}

// goldValue is the score for one gold pile.
const goldValue = 25

// pickupKey identifies a pickup on the current floor so it is only taken once.
type pickupKey struct {
	Room  int
	Point int
}

// Pickup is an item lying on a tile.
type Pickup struct {
	Kind  PickupKind
	X, Y  int // tile
	Price int // zero outside shops
	key   pickupKey
}

// shopStock is what the three counters of a shop sell, left to right.
var shopStock = []PickupKind{PickupPotion, PickupVessel, PickupAnkh}

// placePickups lays out the items of room i. Rooms other than treasure rooms
// and shops hold none.
func placePickups(t *room.Template, i int, taken func(pickupKey) bool) []*Pickup {
	var out []*Pickup
	for n, sp := range t.SpawnPoints {
		key := pickupKey{Room: i, Point: n}
		if taken(key) {
			continue
		}
		switch t.Type {
		case room.TypeTreasure:
			kind := PickupGold
			if n == len(t.SpawnPoints)/2 {
				kind = PickupHeart
			}
			out = append(out, &Pickup{Kind: kind, X: sp.X, Y: sp.Y, key: key})
		case room.TypeShop:
			kind := shopStock[n%len(shopStock)]
			out = append(out, &Pickup{Kind: kind, X: sp.X, Y: sp.Y, Price: shopPrices[kind], key: key})
		}
	}
	return out
}

// collectPickups applies every affordable pickup under the player and
// returns what was taken.
func (g *Game) collectPickups() []*Pickup {
	tx, ty := tileOf(g.player.Pos, g.world.TileSize())
	var taken []*Pickup
	kept := g.pickups[:0]
	for _, p := range g.pickups {
		if p.X != tx || p.Y != ty || p.Price > g.score {
			kept = append(kept, p)
			continue
		}
		g.score -= p.Price
		g.applyPickup(p.Kind)
		g.taken.Put(p.key)
		taken = append(taken, p)
	}
	g.pickups = kept
	return taken
}

func (g *Game) applyPickup(k PickupKind) {
	switch k {
	case PickupGold:
		g.score += goldValue
	case PickupHeart:
		g.player.HP = min(g.player.MaxHP, g.player.HP+2)
	case PickupPotion:
		g.player.HP = g.player.MaxHP
	case PickupVessel:
		g.player.MaxHP++
		g.player.HP++
	case PickupAnkh:
		g.lives++
	}
}

// String returns the item name used in event lines.
func (k PickupKind) String() string {
	switch k {
	case PickupGold:
		return "gold"
	case PickupHeart:
		return "a heart"
	case PickupPotion:
		return "a healing potion"
	case PickupVessel:
		return "a heart vessel"
	case PickupAnkh:
		return "an ankh"
	default:
		return "something"
	}
}

// pickupSprite returns the glyph and color of an item.
func pickupSprite(k PickupKind) (rune, core.Color) {
	switch k {
	case PickupGold:
		return '*', core.ColorBrightYellow
	case PickupHeart:
		return '♥', core.ColorBrightRed
	case PickupPotion:
		return '!', core.ColorBrightMagenta
	case PickupVessel:
		return '♥', core.ColorMagenta
	case PickupAnkh:
		return '☥', core.ColorBrightCyan
	default:
		return '?', core.ColorDefault
	}
}
