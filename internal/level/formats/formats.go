// Package formats provides level and mesh asset decoders.
// It knows nothing about validation; the level package decides whether the
// decoded data forms a playable level.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Trigger is a decoded trigger record.
type Trigger struct {
	ID   uint32
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Level is a decoded level asset ready for validation.
type Level struct {
	Number   int
	Name     string
	Polygons []core.Polygon
	Triggers []Trigger
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".dat"}
}

// IsSupported checks if a file path has a supported extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// ParseByExtension routes data to the parser matching the file extension.
func ParseByExtension(data []byte, path string) (Level, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".dat":
		lvl, err := DecodeLevel(data)
		if err != nil {
			return Level{}, err
		}
		lvl.Number, lvl.Name = numberFromName(path)
		return lvl, nil
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// numberFromName derives a level number and name from a file name such as
// "03-the-drop.dat". Binary assets carry no metadata of their own.
func numberFromName(path string) (int, string) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	num := 0
	i := 0
	for i < len(base) && base[i] >= '0' && base[i] <= '9' {
		num = num*10 + int(base[i]-'0')
		i++
	}
	name := strings.TrimLeft(base[i:], "-_ ")
	name = strings.ReplaceAll(name, "-", " ")
	return num, name
}
