package lander

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Visual characters for rendering
const (
	RockChar  = '█'
	ShipChar  = '*'
	PointChar = '·'
)

// hudRows is the number of screen rows above the viewport.
const hudRows = 1

// Render draws the current frame into the character screen.
// The screen is pre-cleared before this call.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()-hudRows
	if w <= 0 || h <= 0 {
		return
	}

	if g.level != nil {
		aspect := float64(w) / (float64(h) * g.cfg.Camera.CellAspect)
		list, cam := g.DrawList(aspect)
		vp := viewport{cam: cam, w: w, h: h, top: hudRows}
		for _, item := range list {
			switch item.Kind {
			case core.DrawFill:
				vp.fill(dst, item)
			case core.DrawStroke:
				vp.stroke(dst, item)
			case core.DrawPoints:
				for _, p := range item.Polygon {
					vp.plot(dst, p, PointChar, item.Color)
				}
			}
		}
	}

	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// viewport maps world coordinates onto screen cells below the HUD.
type viewport struct {
	cam  core.Bounds
	w, h int
	top  int
}

// cellCenter returns the world point at the center of screen cell (x, y).
func (v viewport) cellCenter(x, y int) core.Vec2 {
	return core.Vec2{
		X: v.cam.MinX + (float64(x)+0.5)*v.cam.Width()/float64(v.w),
		Y: v.cam.MaxY - (float64(y)+0.5)*v.cam.Height()/float64(v.h),
	}
}

func (v viewport) toCell(p core.Vec2) (int, int) {
	x := int(math.Floor((p.X - v.cam.MinX) * float64(v.w) / v.cam.Width()))
	y := int(math.Floor((v.cam.MaxY - p.Y) * float64(v.h) / v.cam.Height()))
	return x, y
}

func (v viewport) plot(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	x, y := v.toCell(p)
	if x < 0 || x >= v.w || y < 0 || y >= v.h {
		return
	}
	dst.SetColored(x, y+v.top, r, c)
}

// fill samples each cell center inside the polygon's screen bounds.
func (v viewport) fill(dst *core.Screen, item core.DrawItem) {
	b := item.Polygon.Bounds()
	x0, y0 := v.toCell(core.V(b.MinX, b.MaxY))
	x1, y1 := v.toCell(core.V(b.MaxX, b.MinY))
	x0, x1 = core.Clamp(x0, 0, v.w-1), core.Clamp(x1, 0, v.w-1)
	y0, y1 = core.Clamp(y0, 0, v.h-1), core.Clamp(y1, 0, v.h-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if item.Polygon.Contains(v.cellCenter(x, y)) {
				dst.SetColored(x, y+v.top, RockChar, item.Color)
			}
		}
	}
}

// stroke plots points along every edge at sub-cell spacing.
func (v viewport) stroke(dst *core.Screen, item core.DrawItem) {
	cellW := v.cam.Width() / float64(v.w)
	cellH := v.cam.Height() / float64(v.h)
	step := math.Min(cellW, cellH) / 2

	poly := item.Polygon
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		edge := b.Sub(a)
		n := max(1, int(math.Ceil(edge.Len()/step)))
		for k := 0; k <= n; k++ {
			v.plot(dst, a.Add(edge.Scale(float64(k)/float64(n))), ShipChar, item.Color)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	if g.level == nil {
		return
	}
	st := g.State()
	left := fmt.Sprintf(" Level %d: %s", g.level.Number(), g.level.Name())
	right := fmt.Sprintf("beacons %d/%d  deaths %d  time %.1fs  %s ",
		g.story.FiredCount(), len(g.level.Triggers()), st.Deaths, float64(st.Ticks)*g.dt, g.capabilities())
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorGray)
}

func (g *Game) capabilities() string {
	var caps []string
	if g.ship.ThrustEnabled {
		caps = append(caps, "THRUST")
	}
	if g.ship.TurningEnabled {
		caps = append(caps, "TURN")
	}
	if len(caps) == 0 {
		return "[systems offline]"
	}
	return "[" + strings.Join(caps, " ") + "]"
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.finished && g.err != nil:
		drawMessage(dst, "Could not load the next level: "+g.err.Error(), "press q to quit")
	case g.finished:
		drawMessage(dst, "You made it out of every cave.", "press q to quit")
	case g.story != nil && g.story.Paused():
		text, _ := g.story.Pending()
		drawMessage(dst, text, "press Enter")
	case g.userPaused:
		drawMessage(dst, "PAUSED", "press P to resume")
	}
}

// drawMessage draws a centered box with word-wrapped text and a footer.
func drawMessage(dst *core.Screen, text, footer string) {
	maxW := min(50, dst.Width()-4)
	if maxW < 10 {
		dst.DrawTextCentered(dst.Height()/2, text)
		return
	}

	lines := wrap(text, maxW)
	lines = append(lines, "", footer)

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorCyan)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == len(lines)-1 {
			c = core.ColorGray
		}
		dst.DrawTextColored(box.X+2, box.Y+1+i, l, c)
	}
}

// wrap splits text into lines of at most width runes, breaking on spaces.
func wrap(text string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		switch {
		case len(cur) == 0:
			cur = wr
		case len(cur)+1+len(wr) <= width:
			cur = append(append(cur, ' '), wr...)
		default:
			lines = append(lines, string(cur))
			cur = wr
		}
		for len(cur) > width {
			lines = append(lines, string(cur[:width]))
			cur = cur[width:]
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
