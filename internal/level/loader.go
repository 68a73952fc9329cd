package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/vovakirdan/tui-lander/internal/level/formats"
)

//go:embed levels/*.yaml
var embeddedLevels embed.FS

// Loader handles loading levels from a directory or the embedded set.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a level loader rooted at root.
// An empty root selects the levels built into the binary.
func NewLoader(root string) *Loader {
	if root == "" {
		sub, err := fs.Sub(embeddedLevels, "levels")
		if err != nil {
			panic(fmt.Sprintf("level: embedded levels: %v", err))
		}
		return &Loader{fsys: sub}
	}
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to decode or validate are skipped.
// Returns levels sorted by number for deterministic ordering.
func (l *Loader) LoadAll() ([]*Level, error) {
	var levels []*Level

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.IsSupported(path) {
			return nil
		}

		lvl, err := l.load(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking levels %s: %w", l.describe(), err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Number() < levels[j].Number()
	})

	return levels, nil
}

// LoadByNumber loads the level with the given number.
// Unlike LoadAll, a broken file with that number is reported, not skipped.
func (l *Loader) LoadByNumber(n int) (*Level, error) {
	var found *Level
	var firstErr error

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.IsSupported(path) || found != nil {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, path)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", path, err)
		}
		parsed, err := formats.ParseByExtension(data, path)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("parsing file %s: %w", path, err)
			}
			return nil
		}
		if parsed.Number != n {
			return nil
		}

		lvl, err := build(parsed)
		if err != nil {
			return fmt.Errorf("level file %s: %w", path, err)
		}
		found = lvl
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		if firstErr != nil {
			return nil, fmt.Errorf("%w: level %d in %s (also: %v)", ErrNotFound, n, l.describe(), firstErr)
		}
		return nil, fmt.Errorf("%w: level %d in %s", ErrNotFound, n, l.describe())
	}
	return found, nil
}

// Numbers returns all loadable level numbers in order.
func (l *Loader) Numbers() ([]int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	nums := make([]int, len(levels))
	for i, lvl := range levels {
		nums[i] = lvl.Number()
	}
	return nums, nil
}

// LoadFile loads and validates a single level file from disk.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	parsed, err := formats.ParseByExtension(data, path)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl, err := build(parsed)
	if err != nil {
		return nil, fmt.Errorf("level file %s: %w", path, err)
	}
	return lvl, nil
}

func (l *Loader) load(path string) (*Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	parsed, err := formats.ParseByExtension(data, path)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return build(parsed)
}

func (l *Loader) describe() string {
	if l.Root == "" {
		return "built-in levels"
	}
	return l.Root
}

// build converts decoded data into a validated Level.
func build(parsed formats.Level) (*Level, error) {
	triggers := make([]Trigger, len(parsed.Triggers))
	for i, t := range parsed.Triggers {
		triggers[i] = Trigger(t)
	}
	lvl, err := New(parsed.Number, parsed.Name, parsed.Polygons, triggers)
	if err != nil {
		return nil, err
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// ToAsset converts a level back into its decoded form, for re-encoding.
func (l *Level) ToAsset() formats.Level {
	out := formats.Level{
		Number:   l.number,
		Name:     l.name,
		Polygons: l.polygons,
	}
	for _, t := range l.Triggers() {
		out.Triggers = append(out.Triggers, formats.Trigger(t))
	}
	return out
}
