// survival is a real-time biome survival game for the terminal.
//
// Usage:
//
//	survival play [variant]    - Play a variant (default: survival)
//	survival menu              - Pick a variant interactively
//	survival list              - List available variants
//	survival biomes            - Show the biome table and per-biome stats
//	survival records [variant] - Show the longest runs
//	survival schema            - Print the config JSON schema
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.survival/runs.db)
//	--log <path>         - Write logs to a file ("-" for stderr)
//	--log-level <level>  - debug, info, warn or error
//
// SURVIVAL_CONFIG, SURVIVAL_DB, SURVIVAL_LOG and SURVIVAL_LOG_LEVEL provide
// the defaults of the matching flags; a .env file in the working directory
// is read first.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/biome-survival/internal/core"
	"github.com/vovakirdan/biome-survival/internal/logging"
	"github.com/vovakirdan/biome-survival/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/biome-survival/internal/games/survival"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
	bindEnvDefaults()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survival",
	Short: "Biome Survival - gather resources before the land wears you down",
	Long: `Biome Survival drops you into a random biome. Click to steer your
survivor toward food, water and wood while the biome drains or restores
your health. The run ends when health reaches zero.

Available commands:
  play     - Play a variant directly
  menu     - Interactive variant picker
  list     - Show all variants
  biomes   - Show biomes, health rates and survival odds
  records  - View the longest runs
  schema   - Print the config file JSON schema

Examples:
  survival play
  survival play survival_odds --seed 42
  survival menu
  survival records
  survival schema --defaults > survival.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.survival/runs.db", "Path to run records database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", `Log file path ("-" for stderr, empty to discard)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(biomesCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(schemaCmd)
}

// bindEnvDefaults lets the environment replace flag defaults. Explicit
// flags still win because parsing happens afterwards.
func bindEnvDefaults() {
	envDefaults := []struct {
		env  string
		flag string
		cmd  *cobra.Command
	}{
		{"SURVIVAL_DB", "db", rootCmd},
		{"SURVIVAL_LOG", "log", rootCmd},
		{"SURVIVAL_LOG_LEVEL", "log-level", rootCmd},
		{"SURVIVAL_CONFIG", "config", playCmd},
		{"SURVIVAL_CONFIG", "config", menuCmd},
		{"SURVIVAL_CONFIG", "config", biomesCmd},
	}
	for _, d := range envDefaults {
		v, ok := os.LookupEnv(d.env)
		if !ok || v == "" {
			continue
		}
		flags := d.cmd.Flags()
		if d.cmd == rootCmd {
			flags = rootCmd.PersistentFlags()
		}
		if f := flags.Lookup(d.flag); f != nil {
			f.DefValue = v
			flags.Set(d.flag, v) //nolint:errcheck // string flags accept any value
		}
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newLogger builds the logger selected by --log and --log-level.
func newLogger() (*log.Logger, io.Closer) {
	logger, closer, err := logging.New(flagLogPath, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger, closer, _ = logging.New("", "")
	}
	return logger, closer
}

// openStore opens the run records database. The game still works
// without one, so failures are reported and a nil store is returned.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run records: %v\n", err)
		logger.Warn("run records unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
