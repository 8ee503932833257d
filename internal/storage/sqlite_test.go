package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "survival", Biome: "Phoenix, Arizona", Inventory: map[string]int{"food": 2, "water": 1}, Survived: 48.5},
		{GameID: "survival", Biome: "Lagos, Nigeria", Inventory: map[string]int{"wood": 1}, Survived: 21},
		{GameID: "survival", Biome: "Canterbury, New Zealand", Inventory: map[string]int{"food": 9, "water": 4, "wood": 3}, Survived: 312.25},
		{GameID: "survival_odds", Biome: "Yakutsk, Russia", Inventory: map[string]int{"water": 5}, Survived: 60},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("survival", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Longest survival first
	if top[0].Survived != 312.25 || top[1].Survived != 48.5 || top[2].Survived != 21 {
		t.Errorf("Runs not in expected order: %v", top)
	}
	if top[0].Total != 16 {
		t.Errorf("Expected total derived from inventory to be 16, got %d", top[0].Total)
	}
	if top[0].Inventory["water"] != 4 || top[0].Biome != "Canterbury, New Zealand" {
		t.Errorf("Run round-tripped incorrectly: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across variants, got %d", len(all))
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{GameID: "test", Biome: "b", Survived: float64((i + 1) * 10)}) //nolint:errcheck
	}
	// Same survival as the best run but more items
	store.SaveRun(RunRecord{GameID: "test", Biome: "b", Inventory: map[string]int{"food": 3}, Survived: 50}) //nolint:errcheck

	top, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Survived != 50 || top[0].Total != 3 {
		t.Errorf("Expected the tie broken by items, got %+v", top[0])
	}
	if top[1].Survived != 50 || top[2].Survived != 40 {
		t.Errorf("Runs not in expected order: %v", top)
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun("survival")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected no best run for an empty store, got %+v", best)
	}

	store.SaveRun(RunRecord{GameID: "survival", Biome: "a", Survived: 10})  //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "survival", Biome: "b", Survived: 300}) //nolint:errcheck

	best, err = store.BestRun("survival")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Biome != "b" {
		t.Errorf("Expected biome b as best run, got %+v", best)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, b := range []string{"first", "second", "third"} {
		store.SaveRun(RunRecord{GameID: "survival", Biome: b, Survived: 5}) //nolint:errcheck
	}

	recent, err := store.RecentRuns("survival", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Biome != "third" || recent[1].Biome != "second" {
		t.Errorf("Expected newest first, got %v", recent)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "survival", Biome: "a", Survived: 1})      //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "survival", Biome: "b", Survived: 2})      //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "survival_odds", Biome: "c", Survived: 3}) //nolint:errcheck

	if err := store.ClearRuns("survival"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("survival", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	other, _ := store.TopRuns("survival_odds", 10)
	if len(other) != 1 {
		t.Errorf("Other variant should not be affected by clearing survival")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("survival")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(RunRecord{GameID: "survival", Biome: "a", Inventory: map[string]int{"food": 2}, Survived: 10}) //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "survival", Biome: "a", Inventory: map[string]int{"wood": 4}, Survived: 30}) //nolint:errcheck
	store.SaveRun(RunRecord{GameID: "survival", Biome: "b", Survived: 20})                                      //nolint:errcheck

	stats, err := store.GetGameStats("survival")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.BestSurvived != 30 || stats.AvgSurvived != 20 || stats.TotalItems != 6 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}

	biomes, err := store.GetBiomeStats("survival")
	if err != nil {
		t.Fatalf("GetBiomeStats() failed: %v", err)
	}
	if len(biomes) != 2 || biomes[0].Biome != "a" || biomes[0].Runs != 2 || biomes[0].AvgSurvived != 20 {
		t.Errorf("Unexpected biome stats: %+v", biomes)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
