package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Fly, starting at a level",
	Long: `Start flying at the given level (default 1). Completing a level loads
the next one; after the last level the run is over.

Controls:
  Left/A, Right/D  - Turn (once unlocked)
  Up/W/Space       - Thrust (once unlocked)
  Enter            - Continue after a message
  P                - Pause
  Ctrl+S           - Screenshot to ~/.lander/screenshots
  Esc/Q            - Quit

Examples:
  lander play
  lander play 2
  lander play --levels ./my-levels --config ./lander.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	start := parseLevelArg(args)
	loader := newLevelLoader()
	if err := requireLevel(loader, start); err != nil {
		return err
	}
	sink, closeAudio := startAudio(cfg.Audio, logger)
	defer closeAudio()

	game, err := gameFactory(cfg, loader)(start, sink, logger)
	if err != nil {
		return fmt.Errorf("cannot start level %d: %w", start, err)
	}

	store, closeStore := openStore(logger)
	defer closeStore()

	return tui.Run(game, store, runtimeConfig(cfg, start), tui.Options{
		FPS:           flagFPS,
		ScreenshotDir: screenshotDir(),
		Logger:        logger,
	})
}
