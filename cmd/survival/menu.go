package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-survival/internal/platform/tui"
	"github.com/vovakirdan/biome-survival/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a variant.
Esc during a run returns to the menu; Tab opens the run records.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play variant
  Tab/R        - Run records
  Q            - Quit

Examples:
  survival menu
  survival menu --fps 30
  survival menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	infos := registry.List()
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	if err := checkConfig(ids...); err != nil {
		return err
	}

	logger, closer := newLogger()
	defer closer.Close() //nolint:errcheck

	store := openStore(logger)
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	engine := startAudio(logger)
	defer engine.Close()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsRecords {
			goBack, err := tui.RunRecords(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		back, err := runGame(menuResult.GameID, cfg, store, engine, logger)
		engine.Silence()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			logger.Error("game failed", "game", menuResult.GameID, "err", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
