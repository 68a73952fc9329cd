package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level interactively",
	Long: `Open the level picker. Enter starts a level, Tab shows the records,
Esc in a game returns to the picker.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	loader := newLevelLoader()
	levels, err := levelInfos(loader)
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		return errors.New("no levels found")
	}

	sink, closeAudio := startAudio(cfg.Audio, logger)
	defer closeAudio()
	store, closeStore := openStore(logger)
	defer closeStore()

	return tui.RunMenu(gameFactory(cfg, loader), levels, store, runtimeConfig(cfg, levels[0].Number), tui.Options{
		FPS:           flagFPS,
		ScreenshotDir: screenshotDir(),
		Audio:         sink,
		Logger:        logger,
	})
}
