// Package collision turns level polygons into a dense occupancy grid and
// answers point-in-solid queries against it.
package collision

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"math/bits"

	"github.com/charmbracelet/log"
	"golang.org/x/image/vector"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// DefaultThreshold is the minimum alpha for a cell to count as solid.
const DefaultThreshold = 128

var (
	ErrBadSize      = errors.New("collision: map dimensions must be positive")
	ErrBadExtents   = errors.New("collision: extents must have positive area")
	ErrBadThreshold = errors.New("collision: threshold must be in 1..255")
)

// Map is an immutable bit-per-cell occupancy grid over a world rectangle.
// Row 0 is the top of the raster (highest world y).
type Map struct {
	width  int
	height int
	ext    core.Extents
	words  int // uint64 words per row
	bits   []uint64
	logger *log.Logger
	solid  int
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	threshold int
	logger    *log.Logger
}

// WithThreshold overrides the alpha threshold (1..255).
func WithThreshold(t int) Option {
	return func(o *buildOptions) {
		o.threshold = t
	}
}

// WithLogger sets the logger used for out-of-bounds query diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *buildOptions) {
		o.logger = l
	}
}

// Build rasterizes polys over ext into a w x h occupancy map.
func Build(polys []core.Polygon, ext core.Extents, w, h int, opts ...Option) (*Map, error) {
	o := buildOptions{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, w, h)
	}
	if !(ext.Width > 0) || !(ext.Height > 0) {
		return nil, fmt.Errorf("%w: %gx%g", ErrBadExtents, ext.Width, ext.Height)
	}
	if o.threshold < 1 || o.threshold > 255 {
		return nil, fmt.Errorf("%w: got %d", ErrBadThreshold, o.threshold)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	canvas := image.NewAlpha(image.Rect(0, 0, w, h))
	r := &raster{ext: ext, w: float64(w), h: float64(h)}
	for _, p := range polys {
		r.fill(canvas, p)
	}

	m := &Map{
		width:  w,
		height: h,
		ext:    ext,
		words:  (w + 63) / 64,
		logger: o.logger,
	}
	m.bits = make([]uint64, m.words*h)

	threshold := uint8(o.threshold)
	for row := 0; row < h; row++ {
		pix := canvas.Pix[row*canvas.Stride : row*canvas.Stride+w]
		base := row * m.words
		for col, a := range pix {
			if a >= threshold {
				m.bits[base+col/64] |= 1 << uint(col%64)
			}
		}
	}
	for _, word := range m.bits {
		m.solid += bits.OnesCount64(word)
	}

	return m, nil
}

// raster maps world coordinates onto canvas pixels. The half-pixel offsets
// line pixel (H-1-k, c) up with the world band that Cell maps to (row k
// before inversion, column c).
type raster struct {
	ext  core.Extents
	w, h float64
}

func (r *raster) toPixel(p core.Vec2) (float64, float64) {
	px := (p.X-r.ext.Left)*r.w/r.ext.Width + 0.5
	py := r.h - 0.5 - (p.Y-r.ext.Bottom)*r.h/r.ext.Height
	return px, py
}

// fill draws one polygon with its own rasterizer clipped to the polygon's
// pixel bounds. Drawing each polygon separately with draw.Over unions them
// no matter which way each one winds.
func (r *raster) fill(dst *image.Alpha, poly core.Polygon) {
	if len(poly) < 3 {
		return
	}

	pts := make([][2]float64, len(poly))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range poly {
		x, y := r.toPixel(p)
		pts[i] = [2]float64{x, y}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	area := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	z := vector.NewRasterizer(area.Dx(), area.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	z.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, pt := range pts[1:] {
		z.LineTo(float32(pt[0]-ox), float32(pt[1]-oy))
	}
	z.ClosePath()
	z.Draw(dst, area, image.Opaque, image.Point{})
}

// Width returns the number of columns.
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Map) Height() int {
	return m.height
}

// Extents returns the world rectangle the map covers.
func (m *Map) Extents() core.Extents {
	return m.ext
}

// Count returns the number of solid cells.
func (m *Map) Count() int {
	return m.solid
}

// Cell maps a world point to its (row, col). ok is false when p lies outside
// the extents or maps past the last row or column.
func (m *Map) Cell(p core.Vec2) (row, col int, ok bool) {
	if !m.ext.Bounds().Contains(p) {
		return 0, 0, false
	}
	row = int(math.Round((p.Y - m.ext.Bottom) * float64(m.height) / m.ext.Height))
	col = int(math.Round((p.X - m.ext.Left) * float64(m.width) / m.ext.Width))
	row = m.height - 1 - row
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return 0, 0, false
	}
	return row, col, true
}

// IsSolid reports whether p falls in a solid cell.
// Points outside the map are empty.
func (m *Map) IsSolid(p core.Vec2) bool {
	row, col, ok := m.Cell(p)
	if !ok {
		m.logger.Debug("collision query outside map", "x", p.X, "y", p.Y)
		return false
	}
	return m.SolidAt(row, col)
}

// SolidAt reads a cell directly. Indices outside the grid are empty.
func (m *Map) SolidAt(row, col int) bool {
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return false
	}
	return m.bits[row*m.words+col/64]&(1<<uint(col%64)) != 0
}

// CellCenter returns the world point that maps exactly onto (row, col).
func (m *Map) CellCenter(row, col int) core.Vec2 {
	k := m.height - 1 - row
	return core.Vec2{
		X: m.ext.Left + float64(col)*m.ext.Width/float64(m.width),
		Y: m.ext.Bottom + float64(k)*m.ext.Height/float64(m.height),
	}
}
