package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sources reported by Resolve besides a file path.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load loads the lander configuration. See Resolve for the search order.
func Load(customPath string) (LanderConfig, error) {
	cfg, _, err := Resolve(customPath)
	return cfg, err
}

// Resolve finds and parses the configuration and reports where it came from.
// Search order: customPath, ~/.lander/configs/lander.yaml, ./configs/lander.yaml,
// the embedded default, then DefaultLanderConfig. Only a bad customPath is an
// error; unreadable or invalid files further down the list are skipped.
// Files are decoded over the defaults, so a partial file only overrides what it sets.
func Resolve(customPath string) (LanderConfig, string, error) {
	if customPath != "" {
		path := expandHome(customPath)
		data, err := os.ReadFile(path)
		if err != nil {
			return LanderConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return LanderConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, path, nil
	}

	for _, path := range searchPaths("lander.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	if cfg, err := Parse(defaultLanderYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultLanderConfig(), SourceBuiltin, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (LanderConfig, error) {
	cfg := DefaultLanderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LanderConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LanderConfig{}, err
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, user directory first.
func searchPaths(filename string) []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".lander", "configs", filename))
	}
	return append(paths, filepath.Join("configs", filename))
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
