package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/biome-survival/internal/platform/tui"
	"github.com/vovakirdan/biome-survival/internal/registry"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [variant]",
	Short: "Show the longest runs",
	Long: `Display the longest-surviving runs, ties broken by items collected.
Without a variant every variant is listed.

Examples:
  survival records
  survival records survival_odds --limit 20
  survival records survival --recent
  survival records survival --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the longest")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the runs of the variant")
}

func runRecords(cmd *cobra.Command, args []string) error {
	gameID, title := "", "All variants"
	if len(args) == 1 {
		game, err := registry.Create(args[0])
		if err != nil {
			return fmt.Errorf("%w; run 'survival list' to see available variants", err)
		}
		gameID, title = game.ID(), game.Title()
	}
	if flagClear && gameID == "" {
		return fmt.Errorf("--clear needs a variant")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs of %s.\n", title)
		return nil
	}

	var runs []storage.RunRecord
	if flagRecent {
		runs, err = store.RecentRuns(gameID, flagLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Run Records - %s\n\n", title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'survival play' to set the first record!")
		return nil
	}
	printRuns(cmd, runs, gameID == "")

	if gameID != "" {
		stats, err := store.GetGameStats(gameID)
		if err == nil && stats.Runs > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Runs: %d  Best: %s  Average: %s  Items: %d\n",
				stats.Runs, tui.FormatSurvived(stats.BestSurvived), tui.FormatSurvived(stats.AvgSurvived), stats.TotalItems)
		}
	}
	return nil
}

func printRuns(cmd *cobra.Command, runs []storage.RunRecord, withVariant bool) {
	out := cmd.OutOrStdout()

	variantCol := func(string) string { return "" }
	if withVariant {
		variantCol = func(id string) string { return fmt.Sprintf("%-14s  ", id) }
	}

	fmt.Fprintf(out, "  %-4s  %s%-26s  %-9s  %-5s  %s\n", "Rank", variantCol("Variant"), "Biome", "Survived", "Items", "Date")
	fmt.Fprintf(out, "  %-4s  %s%-26s  %-9s  %-5s  %s\n", "----", variantCol("-------"), "-----", "--------", "-----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %s%-26s  %-9s  %-5d  %s\n",
			i+1, variantCol(r.GameID), r.Biome, tui.FormatSurvived(r.Survived), r.Total, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
