package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available levels",
	Long:  `Shows every level that loads and validates, in play order, with the
best recorded time when the run database is available.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	levels, err := newLevelLoader().LoadAll()
	if err != nil {
		return err
	}

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	var store *storage.Store
	if s, err := storage.Open(flagDBPath); err == nil {
		store = s
		defer store.Close()
	}

	maxName := 4 // "Name" header
	for _, l := range levels {
		maxName = max(maxName, len(l.Name()))
	}

	fmt.Printf("  %-3s  %-*s  %8s  %8s  %s\n", "#", maxName, "Name", "Polygons", "Triggers", "Best")
	fmt.Printf("  %-3s  %-*s  %8s  %8s  %s\n", "--", maxName, "----", "--------", "--------", "----")
	for _, l := range levels {
		fmt.Printf("  %-3d  %-*s  %8d  %8d  %s\n", l.Number(), maxName, l.Name(),
			len(l.Polygons()), len(l.Triggers()), bestTime(store, l.Number(), cfg.Physics.TickRate))
	}

	fmt.Println()
	fmt.Println("Run 'lander play <number>' to fly a level.")
	return nil
}

// bestTime formats the fastest recorded run of a level, or "-".
func bestTime(store *storage.Store, n, tickRate int) string {
	if store == nil {
		return "-"
	}
	best, err := store.BestRun(n)
	if err != nil || best == nil {
		return "-"
	}
	return tui.FormatDuration(best.Duration(tickRate))
}
