package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/biome-survival/internal/games/survival"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

// RunSink receives the session's display updates on the platform side.
// It logs biome changes and records every finished run in the store.
type RunSink struct {
	gameID string
	store  *storage.Store
	logger *log.Logger

	fps   int
	saved int
	last  *storage.RunRecord
}

// NewRunSink creates a sink for the given variant. Store and logger may be nil.
func NewRunSink(gameID string, store *storage.Store, logger *log.Logger) *RunSink {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RunSink{gameID: gameID, store: store, logger: logger}
}

func (s *RunSink) Inventory(inv survival.Inventory) {
	s.logger.Debug("inventory", "food", inv["food"], "water", inv["water"], "wood", inv["wood"])
}

func (s *RunSink) Health(float64, int) {}

func (s *RunSink) FPS(fps int) { s.fps = fps }

func (s *RunSink) Biome(name, description string) {
	s.logger.Info("biome selected", "game", s.gameID, "biome", name, "description", description)
}

func (s *RunSink) SurvivalOdds(percent int) {
	s.logger.Debug("survival odds", "game", s.gameID, "percent", percent)
}

// GameOver saves the finished run. A failed save is logged; the game
// goes on regardless.
func (s *RunSink) GameOver(summary survival.Summary) {
	inv := make(map[string]int, len(summary.Inventory))
	for kind, n := range summary.Inventory {
		inv[string(kind)] = n
	}
	run := storage.RunRecord{
		GameID:    s.gameID,
		Biome:     summary.Biome,
		Inventory: inv,
		Survived:  summary.Survived,
	}
	s.last = &run

	s.logger.Info("run finished",
		"game", s.gameID,
		"biome", summary.Biome,
		"survived", summary.Survived,
		"items", summary.Inventory.Total(),
	)

	if s.store == nil {
		return
	}
	id, err := s.store.SaveRun(run)
	if err != nil {
		s.logger.Error("cannot save run", "err", err)
		return
	}
	s.last.ID = id
	s.saved++
}

// LastRun returns the most recent finished run, or nil before the first.
func (s *RunSink) LastRun() *storage.RunRecord {
	return s.last
}

// Saved returns how many runs were written to the store.
func (s *RunSink) Saved() int {
	return s.saved
}

// LastFPS returns the last reported frame rate.
func (s *RunSink) LastFPS() int {
	return s.fps
}
