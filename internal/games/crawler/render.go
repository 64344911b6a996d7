package crawler

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/encounter"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/room"
)

// hudRows is the height of the status area above the room.
const hudRows = 2

// Sprite returns the glyph and color a tile kind is drawn with. Every tile
// is two cells wide on screen.
func Sprite(k room.TileKind) (rune, core.Color) {
	switch k {
	case room.Floor:
		return '·', core.ColorDarkGray
	case room.Wall:
		return '█', core.ColorGray
	case room.WallTop:
		return '▀', core.ColorGray
	case room.DoorClosed:
		return '▒', core.ColorBrown
	case room.DoorOpen:
		return '░', core.ColorYellow
	case room.Pit:
		return ' ', core.ColorDefault
	default:
		return '?', core.ColorRed
	}
}

// EnemySprite returns the glyph and color of an enemy kind.
func EnemySprite(k encounter.EnemyKind) (rune, core.Color) {
	switch k {
	case encounter.Skeleton:
		return 's', core.ColorBrightWhite
	case encounter.Ghost:
		return 'g', core.ColorBrightCyan
	case encounter.BoneKing:
		return 'K', core.ColorBrightRed
	case encounter.Slime:
		return 'o', core.ColorBrightGreen
	default:
		return '?', core.ColorRed
	}
}

func roomColor(t room.RoomType) core.Color {
	switch t {
	case room.TypeStart:
		return core.ColorBrightGreen
	case room.TypeCombat:
		return core.ColorWhite
	case room.TypeTreasure:
		return core.ColorBrightYellow
	case room.TypeShop:
		return core.ColorBrightMagenta
	case room.TypeBoss:
		return core.ColorBrightRed
	case room.TypeExit:
		return core.ColorBrightCyan
	default:
		return core.ColorGray
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)

	t := g.world.CurrentRoom().Template
	mapW, mapH := g.minimapSize()
	roomW := t.Width * 2
	showMini := dst.Width() >= roomW+mapW+4

	areaW := dst.Width()
	if showMini {
		areaW -= mapW + 2
	}
	offX := max(0, (areaW-roomW)/2)
	offY := hudRows

	g.renderRoom(dst, offX, offY)
	g.renderFade(dst, offX, offY, roomW, t.Height)

	if showMini {
		x := dst.Width() - mapW - 1
		dst.DrawTextColored(x, offY, "Map", core.ColorGray)
		g.renderMinimap(dst, x, offY+1)
	}

	if g.showMap {
		box := core.NewRect((dst.Width()-mapW)/2-2, (dst.Height()-mapH)/2-1, mapW+4, mapH+2)
		dst.DrawRect(box, ' ')
		dst.DrawBox(box, core.ColorGray)
		g.renderMinimap(dst, box.X+2, box.Y+1)
	}

	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	x := 1
	dst.DrawText(x, 0, "HP ")
	x += 3
	for i := range g.player.MaxHP {
		r := '♥'
		c := core.ColorBrightRed
		if i >= g.player.HP {
			r, c = '♡', core.ColorDarkGray
		}
		dst.SetColored(x, 0, r, c)
		x++
	}

	var floorText string
	if g.mode == ModeEndless {
		floorText = fmt.Sprintf("Floor %d", g.world.FloorNumber)
	} else {
		floorText = fmt.Sprintf("Floor %d/%d", g.world.FloorNumber, g.cfg.Campaign.Floors)
	}
	dst.DrawTextCentered(0, fmt.Sprintf("Lives %d   %s", g.lives, floorText))

	scoreText := fmt.Sprintf("Score %d", g.score)
	dst.DrawText(dst.Width()-len(scoreText)-1, 0, scoreText)

	if g.messageLeft > 0 && g.message != "" {
		dst.DrawTextCenteredColored(1, g.message, core.ColorBrightYellow)
		return
	}
	dst.DrawTextCenteredColored(1, g.roomLine(), core.ColorGray)
}

// roomLine describes the current room for the second HUD row.
func (g *Game) roomLine() string {
	r := g.world.CurrentRoom()
	parts := []string{r.Type.String()}
	if g.tracker != nil {
		def := g.tracker.Def()
		parts = append(parts, def.Difficulty.String(),
			fmt.Sprintf("wave %d/%d", g.tracker.WaveIndex(), len(def.Waves)),
			fmt.Sprintf("%d foes", len(g.enemies)))
	}
	if r.Type == room.TypeExit && !g.stairsOpen() {
		parts = append(parts, "sealed")
	}
	return strings.Join(parts, " · ")
}

func (g *Game) renderRoom(dst *core.Screen, offX, offY int) {
	tm := g.tm
	for y := range tm.Height {
		for x := range tm.Width {
			k := tm.At(x, y)
			r, c := Sprite(k)
			second := r
			if k == room.Floor {
				second = ' '
			}
			dst.SetColored(offX+x*2, offY+y, r, c)
			dst.SetColored(offX+x*2+1, offY+y, second, c)
		}
	}

	t := g.world.CurrentRoom().Template
	if t.Type == room.TypeExit && t.PlayerSpawn != nil {
		c := core.ColorDarkGray
		if g.stairsOpen() {
			c = core.ColorBrightCyan
		}
		dst.SetColored(offX+t.PlayerSpawn.X*2, offY+t.PlayerSpawn.Y, '>', c)
	}

	for _, p := range g.pickups {
		r, c := pickupSprite(p.Kind)
		dst.SetColored(offX+p.X*2, offY+p.Y, r, c)
		if p.Price > 0 {
			price := fmt.Sprintf("%d", p.Price)
			dst.DrawTextColored(offX+p.X*2-len(price)/2, offY+p.Y+1, price, core.ColorYellow)
		}
	}

	ts := g.world.TileSize()
	for _, e := range g.enemies {
		r, c := EnemySprite(e.Kind)
		cx, cy := cellOf(e.Pos, ts)
		dst.SetColored(offX+cx, offY+cy, r, c)
	}

	cx, cy := cellOf(g.player.Pos, ts)
	if g.player.Swing > 0 {
		dx, dy := g.player.Facing.Delta()
		r := '─'
		if dy != 0 {
			r = '│'
		}
		dst.SetColored(offX+cx+dx*2, offY+cy+dy, r, core.ColorBrightWhite)
	}
	// Blink while invulnerable.
	if g.player.Invuln <= 0 || (g.tick/3)%2 == 0 {
		dst.SetColored(offX+cx, offY+cy, '@', core.ColorBrightYellow)
	}
}

// cellOf maps a pixel position to a screen cell offset inside the room.
// Columns have half-tile resolution since tiles are two cells wide.
func cellOf(pos core.Vec, ts float64) (int, int) {
	return int(math.Floor(pos.X * 2 / ts)), int(math.Floor(pos.Y / ts))
}

// renderFade blanks a growing share of the room while a transition runs.
func (g *Game) renderFade(dst *core.Screen, offX, offY, w, h int) {
	o := g.world.Opacity()
	if o <= 0 {
		return
	}
	level := int(o * 10)
	for y := range h {
		for x := range w {
			if o >= 1 || (x*7+y*13)%10 < level {
				dst.Set(offX+x, offY+y, ' ')
			}
		}
	}
}

// minimapSize returns the minimap footprint in cells.
func (g *Game) minimapSize() (int, int) {
	lo, hi := g.world.Layout.Bounds()
	return (hi.X-lo.X)*2 + 1, (hi.Y-lo.Y)*2 + 1
}

// renderMinimap draws discovered rooms and the unexplored rooms next to them.
func (g *Game) renderMinimap(dst *core.Screen, x0, y0 int) {
	l := g.world.Layout
	lo, _ := l.Bounds()

	known := make([]bool, len(l.Rooms))
	for i, r := range l.Rooms {
		if !r.Discovered {
			continue
		}
		known[i] = true
		for _, j := range l.Neighbors(i) {
			known[j] = true
		}
	}

	for _, c := range l.Connections {
		if !l.Rooms[c.A].Discovered && !l.Rooms[c.B].Discovered {
			continue
		}
		a, b := l.Rooms[c.A].Pos, l.Rooms[c.B].Pos
		x := (a.X - lo.X) + (b.X - lo.X)
		y := (a.Y - lo.Y) + (b.Y - lo.Y)
		r := '│'
		if a.Y == b.Y {
			r = '─'
		}
		dst.SetColored(x0+x, y0+y, r, core.ColorDarkGray)
	}

	for i, r := range l.Rooms {
		if !known[i] {
			continue
		}
		x := x0 + (r.Pos.X-lo.X)*2
		y := y0 + (r.Pos.Y-lo.Y)*2
		switch {
		case i == g.world.Current:
			dst.SetColored(x, y, '@', core.ColorBrightYellow)
		case !r.Discovered:
			dst.SetColored(x, y, '?', core.ColorDarkGray)
		default:
			c := roomColor(r.Type)
			if !r.Cleared {
				c = core.ColorRed
			}
			dst.SetColored(x, y, floor.Glyph(r.Type), c)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	midY := dst.Height() / 2

	switch g.state {
	case StatePaused:
		dst.DrawTextCenteredColored(midY, " PAUSED ", core.ColorBrightWhite)
		dst.DrawTextCentered(midY+1, " Press P to resume ")
	case StateGameOver:
		dst.DrawTextCenteredColored(midY-1, " GAME OVER ", core.ColorBrightRed)
		dst.DrawTextCentered(midY, fmt.Sprintf(" Floor %d, score %d ", g.world.FloorNumber, g.score))
		dst.DrawTextCentered(midY+1, " Press R to restart or Q to quit ")
	case StateWin:
		dst.DrawTextCenteredColored(midY-1, " YOU ESCAPED! ", core.ColorBrightGreen)
		dst.DrawTextCentered(midY, fmt.Sprintf(" Final score %d ", g.score))
		dst.DrawTextCentered(midY+1, " Press R to play again or Q to quit ")
	}
}
