package replant

import (
	"math"
	"sort"
	"strconv"
	"strings"

	platformcore "github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/games/replant/core"
)

const hudHeight = 4

// glyph is how one tile stage is drawn.
type glyph struct {
	r rune
	c platformcore.Color
}

var tileGlyphs = map[rune]glyph{
	core.CodeBase:      {'▓', platformcore.ColorGray},
	core.CodeGrassFull: {'█', platformcore.ColorBrightGreen},
	core.CodeGrass4:    {'▓', platformcore.ColorGreen},
	core.CodeGrass3:    {'▒', platformcore.ColorGreen},
	core.CodeGrass2:    {'░', platformcore.ColorYellow},
	core.CodeGrass1:    {'░', platformcore.ColorOrange},
}

var (
	fadingGlyph  = glyph{'·', platformcore.ColorGray}
	unknownGlyph = glyph{'?', platformcore.ColorMagenta}
	flagGlyph    = glyph{'⚑', platformcore.ColorBrightRed}
	rockGlyph    = glyph{'●', platformcore.ColorWhite}
	playerGlyph  = glyph{'☻', platformcore.ColorBrightWhite}
	splashGlyph  = glyph{'*', platformcore.ColorBrightCyan}
)

// view maps projected coordinates onto screen cells.
type view struct {
	tileW   int
	center  core.Vec3
	originX int
	originY int
}

// newView centers the level's bounding box in the area below the HUD.
func (g *Game) newView(dst *platformcore.Screen, top int) view {
	w := max(g.cfg.Render.TileWidth, 1)
	return view{
		tileW:   w,
		center:  g.level.Center(),
		originX: dst.Width()/2 - w,
		originY: top + (dst.Height()-top)/2,
	}
}

// cell returns the left column and row of a projected point. One grid
// step moves tileW columns and one row.
func (v view) cell(p core.Vec3) (int, int) {
	x := (p.X - v.center.X) * float64(2*v.tileW)
	y := (p.Y - v.center.Y) * 4
	return v.originX + int(math.Round(x)), v.originY - int(math.Round(y))
}

// fill draws a tile-wide run of one glyph.
func (v view) fill(dst *platformcore.Screen, x, y int, gl glyph) {
	for i := range 2 * v.tileW {
		dst.SetWithColor(x+i, y, gl.r, gl.c)
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	top := 0
	if g.cfg.Render.ShowHUD {
		top = hudHeight
		g.renderHUD(dst)
	}

	if g.ocean != nil {
		g.ocean.Render(dst, top)
	}

	if g.level == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	v := g.newView(dst, top)
	g.renderTiles(dst, v)
	g.renderSplashes(dst, v)
	g.renderPlayer(dst, v)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "All levels replanted!", "Press R to play again")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderTiles draws tiles back to front so nearer tiles win overlaps.
func (g *Game) renderTiles(dst *platformcore.Screen, v view) {
	type placed struct {
		id  core.TileID
		pos core.Vec3
	}
	ids := g.level.TileIDs()
	tiles := make([]placed, 0, len(ids))
	for _, id := range ids {
		if p, ok := g.level.TileView(id); ok {
			tiles = append(tiles, placed{id, p})
		}
	}
	sort.SliceStable(tiles, func(i, j int) bool {
		return tiles[i].pos.Z > tiles[j].pos.Z
	})

	for _, p := range tiles {
		t, _ := g.level.Tile(p.id)
		x, y := v.cell(p.pos)
		if g.level.Removing(p.id) {
			v.fill(dst, x, y, fadingGlyph)
			continue
		}
		v.fill(dst, x, y, tileGlyph(t))
		switch {
		case t.HasRock:
			dst.SetWithColor(x+v.tileW-1, y, rockGlyph.r, rockGlyph.c)
		case t.HasFlag:
			dst.SetWithColor(x+v.tileW-1, y, flagGlyph.r, flagGlyph.c)
		}
	}
}

func tileGlyph(t *core.Tile) glyph {
	if gl, ok := tileGlyphs[t.Type.Code]; ok {
		return gl
	}
	return unknownGlyph
}

func (g *Game) renderSplashes(dst *platformcore.Screen, v view) {
	for _, s := range g.splashes {
		x, y := v.cell(s.pos.Project())
		dst.SetWithColor(x+v.tileW, y, splashGlyph.r, splashGlyph.c)
	}
}

// renderPlayer draws the player lifted by the jump arc.
func (g *Game) renderPlayer(dst *platformcore.Screen, v view) {
	pv := g.level.Player()
	x, y := v.cell(pv.View)
	y -= int(math.Round(pv.Hop))
	dst.SetWithColor(x+v.tileW-1, y, playerGlyph.r, playerGlyph.c)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Replant | " + g.pack.Name
	if g.level != nil {
		lvl := g.pack.Levels[g.levelIndex]
		stats := g.level.Stats()
		hud += " | Level " + strconv.Itoa(g.levelIndex+1) + "/" + strconv.Itoa(g.pack.Len()) +
			": " + lvl.Name +
			" | Moves: " + strconv.Itoa(stats.Moves) +
			" | Pushes: " + strconv.Itoa(stats.Pushes)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	// Separator
	dst.DrawTextWithColor(0, 1, strings.Repeat("─", dst.Width()), platformcore.ColorGray)

	status, color := g.statusLine()
	dst.DrawTextWithColor(0, 2, status, color)

	dst.DrawTextWithColor(0, 3, strings.Repeat("─", dst.Width()), platformcore.ColorGray)
}

// statusLine returns the hint, replant progress or the controls.
func (g *Game) statusLine() (string, platformcore.Color) {
	if g.level == nil {
		return "", platformcore.ColorDefault
	}
	switch g.level.Phase() {
	case core.PhaseReplanting, core.PhaseCleared:
		return " Replanting... " + strconv.Itoa(g.cleared) + " cleared", platformcore.ColorBrightGreen
	}
	if hint := g.pack.Levels[g.levelIndex].Hint; hint != "" {
		return " Hint: " + hint, platformcore.ColorYellow
	}
	return " WASD: Walk | Arrows: Push | R: Restart | [ ]: Level | P: Pause", platformcore.ColorGray
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := platformcore.CenteredRect(w, h, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorGray)
}
