package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Number   int            `yaml:"number"`
	Name     string         `yaml:"name"`
	Polygons [][][2]float64 `yaml:"polygons"`
	Triggers []YAMLTrigger  `yaml:"triggers"`
}

// YAMLTrigger represents a trigger rectangle in YAML format.
type YAMLTrigger struct {
	ID   uint32  `yaml:"id"`
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		Number:   yl.Number,
		Name:     yl.Name,
		Polygons: PolygonsFromPairs(yl.Polygons),
		Triggers: make([]Trigger, len(yl.Triggers)),
	}
	for i, t := range yl.Triggers {
		level.Triggers[i] = Trigger(t)
	}

	return level, nil
}

// MarshalYAML renders a level back into the authoring format.
func MarshalYAML(lvl Level) ([]byte, error) {
	yl := YAMLLevel{
		Number:   lvl.Number,
		Name:     lvl.Name,
		Polygons: PairsFromPolygons(lvl.Polygons),
		Triggers: make([]YAMLTrigger, len(lvl.Triggers)),
	}
	for i, t := range lvl.Triggers {
		yl.Triggers[i] = YAMLTrigger(t)
	}
	return yaml.Marshal(yl)
}

// PolygonsFromPairs converts [[x, y], ...] lists into polygons.
func PolygonsFromPairs(pairs [][][2]float64) []core.Polygon {
	polys := make([]core.Polygon, len(pairs))
	for i, pts := range pairs {
		poly := make(core.Polygon, len(pts))
		for j, p := range pts {
			poly[j] = core.V(p[0], p[1])
		}
		polys[i] = poly
	}
	return polys
}

// PairsFromPolygons is the inverse of PolygonsFromPairs.
func PairsFromPolygons(polys []core.Polygon) [][][2]float64 {
	pairs := make([][][2]float64, len(polys))
	for i, poly := range polys {
		pts := make([][2]float64, len(poly))
		for j, p := range poly {
			pts[j] = [2]float64{p.X, p.Y}
		}
		pairs[i] = pts
	}
	return pairs
}
