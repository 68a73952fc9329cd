// lander is a terminal lunar-lander game.
//
// Usage:
//
//	lander play [level]           - Fly, starting at a level (default 1)
//	lander menu                   - Pick a level interactively
//	lander list                   - List available levels
//	lander records [level]        - Show the best runs
//	lander convert <in> <out.dat> - Write a level in the binary asset format
//	lander check <file>           - Decode and validate a level file
//	lander serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Frames drawn per second (default: 60)
//	--db <path>          - Run records database (default: ~/.lander/runs.db)
//	--levels <dir>       - Load levels from a directory instead of the built-in set
//	--config <path>      - Custom lander.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLevels   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Lunar lander in your terminal",
	Long: `Fly a small ship through cave levels. Turning and thrust unlock as the
story unfolds; touch the rock and the ship is lost.

Examples:
  lander play
  lander play 2 --fps 30
  lander records 1
  lander convert levels/03-the-long-fall.yaml 03-the-long-fall.dat
  lander serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frames drawn per second")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lander/runs.db", "Path to run records database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lander.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}
