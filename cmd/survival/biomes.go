package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-survival/internal/audio"
	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/games/survival"
	"github.com/vovakirdan/biome-survival/internal/platform/tui"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

var biomesCmd = &cobra.Command{
	Use:   "biomes",
	Short: "Show the biome table",
	Long: `Show every biome of the draw pool with its health rate, the health cap
used by the survival_odds variant, the displayed survival odds and the
ambience it plays. Recorded runs are summarized per biome.

Examples:
  survival biomes
  survival biomes --config ./my-biomes.yaml`,
	Args: cobra.NoArgs,
	RunE: runBiomes,
}

func init() {
	biomesCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runBiomes(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadSurvival(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config:\n%w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render("Biomes"))
	fmt.Fprintln(out, biomeTable(cfg.Biomes))

	logger, closer := newLogger()
	defer closer.Close() //nolint:errcheck

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Debug("run records unavailable", "err", err)
		return nil
	}
	defer store.Close() //nolint:errcheck

	stats, err := store.GetBiomeStats("")
	if err != nil {
		return err
	}
	printBiomeStats(out, stats)
	return nil
}

// biomeTable renders the draw pool, each name in its biome color.
func biomeTable(biomes []config.BiomeConfig) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Biome", "Health/s", "Cap", "Odds", "Weight", "Ambience")

	for _, b := range biomes {
		ambience := b.SoundscapeKey()
		if _, ok := audio.Lookup(ambience); !ok {
			ambience += " (silent)"
		}
		t.Row(
			b.Name,
			fmt.Sprintf("%+g", b.Rate),
			fmt.Sprintf("%g", b.Cap),
			fmt.Sprintf("%d%%", survival.SurvivalOdds(b.Rate)),
			fmt.Sprintf("%g", b.Weight),
			ambience,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 0 && row >= 0 && row < len(biomes) && biomes[row].Hex != "" {
			return cellStyle.Foreground(lipgloss.Color(biomes[row].Hex))
		}
		return cellStyle
	})

	return t.String()
}

func printBiomeStats(w io.Writer, stats []storage.BiomeStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render("Recorded runs"))
	fmt.Fprintf(w, "  %-26s  %-5s  %-9s  %s\n", "Biome", "Runs", "Average", "Best")
	fmt.Fprintf(w, "  %-26s  %-5s  %-9s  %s\n", "-----", "----", "-------", "----")
	for _, s := range stats {
		fmt.Fprintf(w, "  %-26s  %-5d  %-9s  %s\n", s.Biome, s.Runs, tui.FormatSurvived(s.AvgSurvived), tui.FormatSurvived(s.BestSurvived))
	}
}
