package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-survival/internal/audio"
	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
	"github.com/vovakirdan/biome-survival/internal/games/survival"
	"github.com/vovakirdan/biome-survival/internal/platform/tui"
	"github.com/vovakirdan/biome-survival/internal/registry"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

var (
	flagConfig string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start a run of the specified variant (default: survival).

Controls:
  Left click    - Walk to the clicked spot
  Right click   - Walk there too (red marker)
  Enter/Space   - Start a run
  P             - Pause
  M             - Music on/off
  +/-           - Music volume
  Ctrl+S        - Screenshot to ~/.survival/screenshots
  Esc/B         - Back to menu
  Q/Ctrl+C      - Quit

Variants:
  survival       - Full health everywhere, biome ambience
  survival_odds  - Health capped by the biome, survival odds shown

Examples:
  survival play
  survival play survival_odds
  survival play --config ./my-biomes.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with the music off")
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "survival"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if variant exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'survival list' to see available variants", gameID)
	}
	if err := checkConfig(gameID); err != nil {
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

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Info("starting", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if _, err := tui.Run(game, runtimeConfig(), tui.Options{Store: store, Logger: logger, Ambience: engine}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// moder is implemented by variants whose config depends on a health mode.
type moder interface {
	Mode() config.HealthMode
}

// checkConfig validates the custom config for each variant up front so
// mistakes are reported before the terminal switches to the game screen.
func checkConfig(gameIDs ...string) error {
	survival.SetConfigPath(flagConfig)
	if flagConfig == "" {
		return nil
	}
	for _, id := range gameIDs {
		game, err := registry.Create(id)
		if err != nil {
			return err
		}
		m, ok := game.(moder)
		if !ok {
			continue
		}
		if _, err := survival.LoadConfig(m.Mode()); err != nil {
			return fmt.Errorf("invalid config %s for %s:\n%w", flagConfig, id, err)
		}
	}
	return nil
}

// startAudio creates the ambience engine and hands it to the speaker.
// Without an audio device the game plays silently.
func startAudio(logger *log.Logger) *audio.Engine {
	engine := audio.New(logger, time.Now().UnixNano())
	if err := engine.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", err)
		logger.Warn("audio unavailable", "err", err)
	}
	if flagMute && engine.Enabled() {
		engine.Toggle()
	}
	return engine
}

// runGame plays one variant inside the menu loop and reports whether the
// player asked to come back to the menu.
func runGame(gameID string, cfg core.RuntimeConfig, store *storage.Store, engine *audio.Engine, logger *log.Logger) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Info("starting", "game", gameID, "fps", cfg.TickRate, "seed", cfg.Seed)
	return tui.Run(game, cfg, tui.Options{Store: store, Logger: logger, Ambience: engine})
}
