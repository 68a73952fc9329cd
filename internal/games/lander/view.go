package lander

import "github.com/vovakirdan/tui-lander/internal/core"

// Palette used by the draw list.
const (
	RockColor     = core.ColorGray
	ShipColor     = core.ColorBrightYellow
	WreckColor    = core.ColorRed
	ColliderColor = core.ColorBrightRed
)

// Camera returns the visible world rectangle for a viewport of the given
// aspect ratio (width / height), centered on the ship.
func (g *Game) Camera(aspect float64) core.Bounds {
	h := g.cfg.Camera.ViewHeight
	w := h * aspect
	c := core.Vec2{}
	if g.ship != nil {
		c = g.ship.Position
	}
	return core.Bounds{
		MinX: c.X - w/2,
		MaxX: c.X + w/2,
		MinY: c.Y - h/2,
		MaxY: c.Y + h/2,
	}
}

// DrawList returns what to draw, back to front, and the camera rectangle.
// Level polygons outside the camera are culled.
func (g *Game) DrawList(aspect float64) (core.DrawList, core.Bounds) {
	cam := g.Camera(aspect)
	if g.level == nil {
		return nil, cam
	}

	var list core.DrawList
	for _, p := range g.level.Polygons() {
		if overlaps(p.Bounds(), cam) {
			list = append(list, core.DrawItem{Kind: core.DrawFill, Polygon: p, Color: RockColor})
		}
	}

	shipColor := ShipColor
	if !g.ship.Alive {
		shipColor = WreckColor
	}
	for _, p := range g.ship.WorldVisual() {
		list = append(list, core.DrawItem{Kind: core.DrawStroke, Polygon: p, Color: shipColor})
	}

	if g.cfg.Camera.Debug {
		for _, p := range g.ship.WorldCollider() {
			list = append(list, core.DrawItem{Kind: core.DrawStroke, Polygon: p, Color: ColliderColor})
		}
		list = append(list, core.DrawItem{
			Kind:    core.DrawPoints,
			Polygon: core.Polygon(g.ship.ColliderSamples()),
			Color:   ColliderColor,
		})
	}
	return list, cam
}

func overlaps(a, b core.Bounds) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX && a.MinY <= b.MaxY && a.MaxY >= b.MinY
}
