package tui

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/biome-survival/internal/games/survival"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

func TestRunSinkSavesFinishedRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	sink := NewRunSink("survival_odds", store, nil)
	sink.Biome("Yakutsk, Russia", "Freezing cold")
	sink.GameOver(survival.Summary{
		Biome:     "Yakutsk, Russia",
		Inventory: survival.Inventory{"food": 2, "water": 3, "wood": 0},
		Survived:  42.5,
	})

	if sink.Saved() != 1 {
		t.Fatalf("Saved() = %d, want 1", sink.Saved())
	}
	last := sink.LastRun()
	if last == nil || last.ID == 0 || last.Survived != 42.5 {
		t.Fatalf("LastRun() = %+v", last)
	}

	runs, err := store.TopRuns("survival_odds", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].Biome != "Yakutsk, Russia" || runs[0].Total != 5 || runs[0].Inventory["water"] != 3 {
		t.Errorf("stored run = %+v", runs[0])
	}
}

func TestRunSinkWithoutStore(t *testing.T) {
	sink := NewRunSink("survival", nil, nil)
	sink.FPS(58)
	sink.GameOver(survival.Summary{Biome: "Lagos, Nigeria", Survived: 3})

	if sink.Saved() != 0 {
		t.Errorf("Saved() = %d without a store", sink.Saved())
	}
	if sink.LastRun() == nil || sink.LastRun().Biome != "Lagos, Nigeria" {
		t.Errorf("LastRun() = %+v", sink.LastRun())
	}
	if sink.LastFPS() != 58 {
		t.Errorf("LastFPS() = %d, want 58", sink.LastFPS())
	}
}

func TestFormatSurvived(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "0:00.0"},
		{-3, "0:00.0"},
		{9.96, "0:10.0"},
		{61.25, "1:01.3"},
		{3599.9, "59:59.9"},
	}
	for _, tt := range tests {
		if got := FormatSurvived(tt.secs); got != tt.want {
			t.Errorf("FormatSurvived(%v) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
