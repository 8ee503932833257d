package survival

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/biome-survival/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '@'
	GridChar      = '·'
	TrailChar     = '·'
	SeparatorChar = '─'
	HeartChar     = '♥'
	BarFullChar   = '█'
	BarEmptyChar  = '░'
)

// Background grid spacing in cells.
const (
	gridStepX = 4
	gridStepY = 2
)

// arrows indexed by octant, clockwise from east with y pointing down.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// dimmer pairs a bright color with its darker shade for the item glow pulse.
var dimmer = map[core.Color]core.Color{
	core.ColorBrightGreen:   core.ColorGreen,
	core.ColorBrightBlue:    core.ColorBlue,
	core.ColorBrightRed:     core.ColorRed,
	core.ColorBrightYellow:  core.ColorYellow,
	core.ColorBrightCyan:    core.ColorCyan,
	core.ColorBrightMagenta: core.ColorMagenta,
	core.ColorBrightWhite:   core.ColorWhite,
	core.ColorOrange:        core.ColorYellow,
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	g.renderHUD(dst)
	g.renderGrid(dst)

	if !g.session.Running() {
		g.renderStartScreen(dst)
		return
	}

	g.renderItems(dst)
	g.renderParticles(dst)
	g.renderIndicators(dst)
	g.renderPlayer(dst)

	if g.paused {
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	rows := g.cfg.World.HUDRows
	w := dst.Width()
	p := g.panel

	if rows > 0 {
		name := p.biome
		if name == "" {
			name = "No biome yet"
		}
		x := drawText(dst, 1, 0, name, g.session.Biome.Color)
		right := w - 1
		if p.fps > 0 {
			fps := fmt.Sprintf("%d FPS", p.fps)
			right = w - len(fps) - 1
			dst.DrawTextColored(right, 0, fps, core.ColorGray)
			right--
		}
		if p.description != "" {
			x += 2
			dst.DrawTextColored(x, 0, truncate(p.description, right-x), core.ColorGray)
		}
	}

	if rows > 1 {
		x := 1
		dst.SetColored(x, 1, HeartChar, core.ColorBrightRed)
		x += 2
		x = drawBar(dst, x, 1, 10, p.fraction)
		x = drawText(dst, x, 1, fmt.Sprintf(" %d", p.health), healthColor(p.fraction))

		for _, k := range g.session.Kinds() {
			x += 2
			dst.SetColored(x, 1, k.Glyph, k.Color)
			x += 2
			x = drawText(dst, x, 1, fmt.Sprintf("%s %d", k.Kind, p.inventory[k.Kind]), core.ColorDefault)
		}

		if p.showOdds && p.biome != "" {
			odds := fmt.Sprintf("Odds %d%%", p.odds)
			dst.DrawTextColored(w-len(odds)-1, 1, odds, core.ColorBrightYellow)
		}
	}

	if rows > 2 {
		dst.DrawHLine(0, 2, w, SeparatorChar, core.ColorGray)
	}
}

// drawText draws colored text and returns the column after it.
func drawText(dst *core.Screen, x, y int, text string, c core.Color) int {
	dst.DrawTextColored(x, y, text, c)
	return x + utf8.RuneCountInString(text)
}

// drawBar draws a fraction bar of the given width and returns the next column.
func drawBar(dst *core.Screen, x, y, width int, fraction float64) int {
	filled := core.Clamp(int(math.Round(fraction*float64(width))), 0, width)
	color := healthColor(fraction)
	for i := range width {
		if i < filled {
			dst.SetColored(x+i, y, BarFullChar, color)
		} else {
			dst.SetColored(x+i, y, BarEmptyChar, core.ColorGray)
		}
	}
	return x + width
}

func healthColor(fraction float64) core.Color {
	switch {
	case fraction > 0.5:
		return core.ColorBrightGreen
	case fraction > 0.25:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

func (g *Game) renderGrid(dst *core.Screen) {
	top := g.cfg.World.HUDRows
	for y := top; y < dst.Height(); y += gridStepY {
		for x := 0; x < dst.Width(); x += gridStepX {
			dst.SetColored(x, y, GridChar, core.ColorGray)
		}
	}
}

func (g *Game) renderItems(dst *core.Screen) {
	for _, it := range g.session.Items {
		col, row := g.toCell(it.Pos)
		age := g.session.Elapsed - it.SpawnAt
		glow := math.Sin(age*4)*0.5 + 0.5
		color := it.Color
		if d, ok := dimmer[color]; ok && glow < 0.5 {
			color = d
		}
		dst.SetColored(col, row, it.Glyph, color)
	}
}

func (g *Game) renderParticles(dst *core.Screen) {
	for _, p := range g.session.Particles() {
		col, row := g.toCell(p.Pos)
		if row < g.cfg.World.HUDRows {
			continue
		}
		glyph := '*'
		if p.TTL > 0 && p.Life/p.TTL > 0.5 {
			glyph = '·'
		}
		dst.SetColored(col, row, glyph, p.Color)
	}
}

func (g *Game) renderIndicators(dst *core.Screen) {
	for _, in := range g.session.Indicators() {
		col, row := g.toCell(in.Pos)
		glyph := '◎'
		switch t := in.Progress(); {
		case t > 0.66:
			glyph = '·'
		case t > 0.33:
			glyph = 'o'
		}
		dst.SetColored(col, row, glyph, in.Color)
	}
}

func (g *Game) renderPlayer(dst *core.Screen) {
	pl := g.session.Player
	pc, pr := g.toCell(pl.Pos)

	if pl.Target != nil {
		// Dotted trail toward the target, sampled at half-cell steps.
		to := pl.Target.Sub(pl.Pos)
		step := math.Min(g.cfg.World.CellWidth, g.cfg.World.CellHeight) / 2
		n := int(to.Len() / step)
		for i := 1; i < n; i++ {
			c, r := g.toCell(pl.Pos.Add(to.Scale(float64(i) / float64(n))))
			if cell := dst.GetCell(c, r); cell.Rune == ' ' || cell.Rune == GridChar {
				dst.SetColored(c, r, TrailChar, core.ColorBlue)
			}
		}

		if v := pl.Vel.Len(); v > 1 {
			dst.SetColored(pc, pr-1, arrowFor(pl.Vel), core.ColorBrightBlue)
		}
	}

	dst.SetColored(pc, pr, PlayerChar, core.ColorBrightWhite)
}

// arrowFor picks the 8-way arrow closest to the direction of v.
func arrowFor(v core.Vec) rune {
	octant := int(math.Round(math.Atan2(v.Y, v.X)/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

func (g *Game) renderStartScreen(dst *core.Screen) {
	lines := []string{""}
	for _, b := range g.session.Biomes() {
		detail := fmt.Sprintf("%+.1f/s", b.Rate)
		if g.cfg.Health.ShowOdds {
			detail = fmt.Sprintf("odds %d%%", b.Odds())
		}
		lines = append(lines, fmt.Sprintf("%-26s %s", b.Name, detail))
	}
	lines = append(lines, "")
	if last, ok := g.session.LastSummary(); ok {
		lines = append(lines,
			fmt.Sprintf("Run %d: %s, %.1fs", g.panel.gameOvers, last.Biome, last.Survived),
			g.inventoryLine(last.Inventory),
			"",
		)
	}
	lines = append(lines, "Click to move, Enter to start")

	drawPanel(dst, g.Title(), lines, g.cfg.World.HUDRows)
}

func (g *Game) inventoryLine(inv Inventory) string {
	parts := make([]string, 0, len(g.session.Kinds()))
	for _, k := range g.session.Kinds() {
		parts = append(parts, fmt.Sprintf("%s %d", k.Kind, inv[k.Kind]))
	}
	return "Collected: " + strings.Join(parts, ", ")
}

// drawPanel draws a titled box with left-aligned lines, centered in the
// area below top.
func drawPanel(dst *core.Screen, title string, lines []string, top int) {
	inner := utf8.RuneCountInString(title) + 4
	for _, l := range lines {
		inner = core.Max(inner, utf8.RuneCountInString(l))
	}
	boxW := core.Min(inner+4, dst.Width())
	boxH := core.Min(len(lines)+2, dst.Height()-top)
	boxX := (dst.Width() - boxW) / 2
	boxY := top + (dst.Height()-top-boxH)/2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(boxX+(boxW-utf8.RuneCountInString(title)-2)/2, boxY, " "+title+" ", core.ColorBrightYellow)

	for i, l := range lines {
		if i+1 >= boxH-1 {
			break
		}
		dst.DrawText(boxX+2, boxY+1+i, truncate(l, boxW-4))
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-utf8.RuneCountInString(subtitle))/2, boxY+3, subtitle)
}
