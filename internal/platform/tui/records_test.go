package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/biome-survival/internal/storage"
)

func TestRecordsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.RunRecord{
		{GameID: "survival", Biome: "Manaus, Brazil", Inventory: map[string]int{"food": 1}, Survived: 12},
		{GameID: "survival", Biome: "Phoenix, Arizona", Inventory: map[string]int{"water": 4}, Survived: 90},
		{GameID: "survival_odds", Biome: "Lagos, Nigeria", Survived: 8},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewRecordsModel(store, 120, 30)
	if len(m.variants) != 2 || m.variants[0].ID != "survival" {
		t.Fatalf("variants = %+v", m.variants)
	}
	if len(m.runs) != 2 || m.runs[0].Biome != "Phoenix, Arizona" {
		t.Fatalf("runs = %+v, want longest first", m.runs)
	}

	view := m.View()
	for _, want := range []string{"RUN RECORDS", "Phoenix, Arizona", "1:30.0", "Runs"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(runeKey("o"))
	m = next.(RecordsModel)
	if !m.recent || m.runs[0].Biome != "Phoenix, Arizona" {
		t.Errorf("recent order = %+v", m.runs)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RecordsModel)
	if m.cursor != 1 || len(m.runs) != 1 || m.runs[0].Biome != "Lagos, Nigeria" {
		t.Errorf("after tab: cursor %d runs %+v", m.cursor, m.runs)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(RecordsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestRecordsModelWithoutStore(t *testing.T) {
	m := NewRecordsModel(nil, 60, 20)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("expected unavailable message without a store")
	}
}
