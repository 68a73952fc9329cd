package config

import (
	"fmt"
	"os"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/level/formats"
)

// Meshes returns the visual and collider polygons, decoding .dat assets
// when paths are configured.
func (s ShipConfig) Meshes() (visual, collider []core.Polygon, err error) {
	visual, err = mesh(s.Visual, s.VisualAsset)
	if err != nil {
		return nil, nil, fmt.Errorf("ship visual: %w", err)
	}
	collider, err = mesh(s.Collider, s.ColliderAsset)
	if err != nil {
		return nil, nil, fmt.Errorf("ship collider: %w", err)
	}
	if len(collider) == 0 {
		return nil, nil, fmt.Errorf("ship collider: no polygons")
	}
	return visual, collider, nil
}

func mesh(inline [][][2]float64, asset string) ([]core.Polygon, error) {
	if asset == "" {
		return formats.PolygonsFromPairs(inline), nil
	}
	data, err := os.ReadFile(expandHome(asset))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", asset, err)
	}
	polys, err := formats.DecodePolygons(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", asset, err)
	}
	return polys, nil
}
