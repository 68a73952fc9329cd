package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// ErrTruncated is returned when an asset ends before its declared contents.
var ErrTruncated = errors.New("formats: truncated asset")

// Binary layout (little-endian, lengths are u64 as written by the mesh exporter):
//
//	polygon list: u64 n, then n x (u64 m, then m x (f32 x, f32 y))
//	trigger list: u64 k, then k x (u32 id, f32 min_x, f32 max_x, f32 min_y, f32 max_y)
//
// A level asset is a polygon list followed by a trigger list. A mesh asset
// (ship visual or collider) is a polygon list alone.
const (
	pointSize   = 8
	triggerSize = 20
	lengthSize  = 8
)

type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) u64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) f32() (float64, error) {
	bits, err := r.u32()
	if err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(bits)), nil
}

// length reads a count and rejects counts that cannot fit in the remaining
// bytes, so a corrupt header never triggers a huge allocation.
func (r *reader) length(elemSize int) (int, error) {
	n, err := r.u64()
	if err != nil {
		return 0, err
	}
	if n > uint64(r.remaining()/elemSize) {
		return 0, fmt.Errorf("%w: %d elements of %d bytes declared, %d bytes left", ErrTruncated, n, elemSize, r.remaining())
	}
	return int(n), nil
}

func (r *reader) polygons() ([]core.Polygon, error) {
	n, err := r.length(lengthSize)
	if err != nil {
		return nil, fmt.Errorf("polygon count: %w", err)
	}
	polys := make([]core.Polygon, 0, n)
	for i := 0; i < n; i++ {
		m, err := r.length(pointSize)
		if err != nil {
			return nil, fmt.Errorf("polygon %d vertex count: %w", i, err)
		}
		poly := make(core.Polygon, m)
		// length has checked that all m points are in the buffer.
		for j := range poly {
			x, _ := r.f32()
			y, _ := r.f32()
			poly[j] = core.V(x, y)
		}
		polys = append(polys, poly)
	}
	return polys, nil
}

func (r *reader) triggers() ([]Trigger, error) {
	k, err := r.length(triggerSize)
	if err != nil {
		return nil, fmt.Errorf("trigger count: %w", err)
	}
	triggers := make([]Trigger, k)
	// length has checked that all k records are in the buffer.
	for i := range triggers {
		id, _ := r.u32()
		minX, _ := r.f32()
		maxX, _ := r.f32()
		minY, _ := r.f32()
		maxY, _ := r.f32()
		triggers[i] = Trigger{ID: id, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	}
	return triggers, nil
}

func (r *reader) done() error {
	if r.remaining() != 0 {
		return fmt.Errorf("formats: %d trailing bytes", r.remaining())
	}
	return nil
}

// DecodePolygons decodes a mesh asset.
func DecodePolygons(data []byte) ([]core.Polygon, error) {
	r := &reader{buf: data}
	polys, err := r.polygons()
	if err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}
	if err := r.done(); err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}
	return polys, nil
}

// DecodeLevel decodes a level asset. Number and Name are left empty.
func DecodeLevel(data []byte) (Level, error) {
	r := &reader{buf: data}
	polys, err := r.polygons()
	if err != nil {
		return Level{}, fmt.Errorf("decode level: %w", err)
	}
	triggers, err := r.triggers()
	if err != nil {
		return Level{}, fmt.Errorf("decode level: %w", err)
	}
	if err := r.done(); err != nil {
		return Level{}, fmt.Errorf("decode level: %w", err)
	}
	return Level{Polygons: polys, Triggers: triggers}, nil
}

// EncodePolygons encodes a mesh asset.
func EncodePolygons(polys []core.Polygon) []byte {
	return appendPolygons(nil, polys)
}

// EncodeLevel encodes the polygons and triggers of a level asset.
func EncodeLevel(lvl Level) []byte {
	buf := appendPolygons(nil, lvl.Polygons)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(lvl.Triggers)))
	for _, t := range lvl.Triggers {
		buf = binary.LittleEndian.AppendUint32(buf, t.ID)
		buf = appendF32(buf, t.MinX)
		buf = appendF32(buf, t.MaxX)
		buf = appendF32(buf, t.MinY)
		buf = appendF32(buf, t.MaxY)
	}
	return buf
}

func appendPolygons(buf []byte, polys []core.Polygon) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(polys)))
	for _, p := range polys {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(p)))
		for _, pt := range p {
			buf = appendF32(buf, pt.X)
			buf = appendF32(buf, pt.Y)
		}
	}
	return buf
}

func appendF32(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
}
