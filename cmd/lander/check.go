package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/collision"
	"github.com/vovakirdan/tui-lander/internal/level"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Decode and validate a level file",
	Long: `Load a level file, validate it and rasterize its collision map with the
configured size and extents. Exits non-zero if the level cannot be played.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, "check")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	lvl, err := level.LoadFile(args[0])
	if err != nil {
		return err
	}
	spawn, err := lvl.Spawn()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	col := cfg.Collision
	cmap, err := collision.Build(lvl.Polygons(), col.Extents, col.Width, col.Height,
		collision.WithThreshold(col.Threshold),
		collision.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	total := cmap.Width() * cmap.Height()
	fmt.Printf("Level %d: %s\n", lvl.Number(), lvl.Name())
	fmt.Printf("  polygons:  %d\n", len(lvl.Polygons()))
	fmt.Printf("  triggers:  %d\n", len(lvl.Triggers()))
	fmt.Printf("  spawn:     (%.1f, %.1f)\n", spawn.X, spawn.Y)
	fmt.Printf("  solid:     %d of %d cells (%.1f%%)\n", cmap.Count(), total, 100*float64(cmap.Count())/float64(total))

	script, err := cfg.Story.Script()
	if err != nil {
		return err
	}
	scripted := 0
	for _, t := range lvl.Triggers() {
		if t.ID == 0 {
			continue
		}
		if _, ok := script.Lookup(lvl.Number(), t.ID); ok {
			scripted++
		} else {
			logger.Warn("trigger has no story entry", "level", lvl.Number(), "trigger", t.ID)
		}
	}
	fmt.Printf("  story:     %d of %d triggers scripted (%d entries configured)\n",
		scripted, len(lvl.Triggers())-1, script.Len())

	if cmap.IsSolid(spawn) {
		logger.Warn("spawn point is inside rock", "x", spawn.X, "y", spawn.Y)
	}
	return nil
}
