package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/games/survival"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

func TestBuildSchema(t *testing.T) {
	data, err := json.Marshal(buildSchema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	out := string(data)
	for _, want := range []string{"Biome Survival Config", "biomes", "spawner", "cell_width", "biome_scaled"} {
		if !strings.Contains(out, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestBiomeTable(t *testing.T) {
	out := biomeTable(config.DefaultSurvivalConfig().Biomes)
	for _, want := range []string{"Canterbury, New Zealand", "Yakutsk, Russia", "+0.5", "-5", "95%", "35%", "lagos"} {
		if !strings.Contains(out, want) {
			t.Errorf("biome table missing %q:\n%s", want, out)
		}
	}
}

func TestRecordsCommand(t *testing.T) {
	flagDBPath = filepath.Join(t.TempDir(), "runs.db")
	flagLimit, flagRecent, flagClear = 10, false, false

	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(storage.RunRecord{GameID: "survival", Biome: "Phoenix, Arizona", Inventory: map[string]int{"water": 2}, Survived: 75.5}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	var buf bytes.Buffer
	recordsCmd.SetOut(&buf)
	if err := runRecords(recordsCmd, []string{"survival"}); err != nil {
		t.Fatalf("runRecords() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Phoenix, Arizona") || !strings.Contains(out, "1:15.5") {
		t.Errorf("records output missing run:\n%s", out)
	}

	if err := runRecords(recordsCmd, []string{"nope"}); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestCheckConfigPerVariant(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"biome without cap", "biomes:\n  - name: \"Tundra, Test\"\n    rate: -1\n    weight: 1\n", false},
		{"negative cap", "biomes:\n  - name: \"Tundra, Test\"\n    rate: -1\n    cap: -5\n    weight: 1\n", true},
	}

	defer survival.SetConfigPath("")
	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flagConfig = filepath.Join(dir, fmt.Sprintf("c%d.yaml", i))
			defer func() { flagConfig = "" }()
			if err := os.WriteFile(flagConfig, []byte(tc.body), 0o600); err != nil {
				t.Fatal(err)
			}

			err := checkConfig("survival", "survival_odds")
			if (err != nil) != tc.wantErr {
				t.Errorf("checkConfig() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
