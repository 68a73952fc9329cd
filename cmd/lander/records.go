package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagRecordsPlain bool
	flagRecordsClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show the best runs",
	Long: `Display the fastest completions of a level (default 1).
In a terminal this opens an interactive table; use --plain for text output.

Examples:
  lander records
  lander records 2 --plain
  lander records 2 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagRecordsPlain, "plain", false, "Print a plain text table")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete all recorded runs of the level")
}

func runRecords(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	levels, err := levelInfos(newLevelLoader())
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	n := parseLevelArg(args)
	if flagRecordsClear {
		if err := store.ClearRuns(n); err != nil {
			return err
		}
		fmt.Printf("Cleared records for level %d.\n", n)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagRecordsPlain && term.IsTerminal(fd) {
		w, h, err := term.GetSize(fd)
		if err != nil {
			w, h = 80, 24
		}
		return tui.RunRecords(store, levels, n, cfg.Physics.TickRate, w, h)
	}

	runs, err := store.BestRuns(n, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - level %d\n\n", n)
	if len(runs) == 0 {
		fmt.Println("No landings recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lander play %d' to set the first time!\n", n)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %s\n", "Rank", "Time", "Deaths", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %s\n", "----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-6d  %s\n",
			i+1, tui.FormatDuration(r.Duration(cfg.Physics.TickRate)), r.Deaths, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Levels()
	if err != nil {
		return err
	}
	for _, st := range stats {
		if st.Level == n {
			fmt.Printf("\n%d runs, %d deaths in total, last flown %s\n",
				st.Runs, st.Deaths, st.LastPlayed.Format("2006-01-02"))
		}
	}
	return nil
}
