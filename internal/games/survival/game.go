// Package survival implements the biome survival game: a player steered by
// clicks gathers food, water and wood while the biome drains or restores
// health, until the meter runs out.
package survival

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/biome-survival/internal/config"
	"github.com/vovakirdan/biome-survival/internal/core"
	"github.com/vovakirdan/biome-survival/internal/registry"
)

// Minimum terminal size the game can be played in.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Session to the platform: it maps terminal cells to world
// units, derives frame deltas from timestamps and draws the result.
type Game struct {
	mode config.HealthMode

	runtime core.RuntimeConfig
	cfg     config.SurvivalConfig
	session *Session
	stepper *core.Stepper
	panel   *panel

	sink     UISink
	ambience Ambience
	logger   *log.Logger

	configErr      error
	paused         bool
	screenTooSmall bool
}

// New creates the fixed-health variant with ambience.
func New() *Game {
	return &Game{mode: config.HealthFixed, logger: log.New(io.Discard)}
}

// NewOdds creates the biome-scaled variant with survival odds.
func NewOdds() *Game {
	return &Game{mode: config.HealthBiomeScaled, logger: log.New(io.Discard)}
}

// SetLogger sets the logger that reports config fallbacks.
func (g *Game) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g.logger = logger
}

// ConfigErr returns why the last Reset fell back to the built-in
// config, or nil when the configured file was used.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string {
	if g.mode == config.HealthBiomeScaled {
		return "survival_odds"
	}
	return "survival"
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	if g.mode == config.HealthBiomeScaled {
		return "Biome Survival (Odds)"
	}
	return "Biome Survival"
}

// Mode returns the health mode of this variant.
func (g *Game) Mode() config.HealthMode {
	return g.mode
}

// Attach wires the platform's UI sink and ambience engine. It may be
// called before or after Reset.
func (g *Game) Attach(sink UISink, amb Ambience) {
	g.sink = sink
	g.ambience = amb
	if g.session != nil {
		g.session.Attach(g.sinks(), amb)
	}
}

func (g *Game) sinks() UISink {
	if g.sink == nil {
		return g.panel
	}
	return MultiSink{g.panel, g.sink}
}

// Reset loads the configuration and builds a fresh session in the
// pre-game state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig(g.mode)
	g.configErr = err
	if err != nil {
		g.logger.Warn("using default config", "game", g.ID(), "path", configPath, "err", err)
		cfg = config.DefaultSurvivalConfig()
		config.ApplyHealthMode(&cfg, g.mode)
	}
	g.cfg = cfg

	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH

	w, h := g.worldSize(runtime.ScreenW, runtime.ScreenH)
	g.session = NewSession(cfg, w, h, rand.New(rand.NewSource(runtime.Seed)))
	g.stepper = core.NewStepper(core.MaxStep)
	g.panel = newPanel(cfg.Health.ShowOdds)
	g.paused = false
	g.session.Attach(g.sinks(), g.ambience)
}

// LoadConfig reads the configured file, applies the health mode and
// validates the result.
func LoadConfig(mode config.HealthMode) (config.SurvivalConfig, error) {
	cfg, err := config.LoadSurvival(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyHealthMode(&cfg, mode)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Resize adapts the world to a new terminal size without ending the run.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	g.screenTooSmall = screenW < MinScreenW || screenH < MinScreenH
	if g.session != nil {
		g.session.Resize(g.worldSize(screenW, screenH))
	}
}

// worldSize converts a terminal size to world units, leaving room for the HUD.
func (g *Game) worldSize(screenW, screenH int) (float64, float64) {
	rows := screenH - g.cfg.World.HUDRows
	if rows < 1 {
		rows = 1
	}
	return float64(screenW) * g.cfg.World.CellWidth, float64(rows) * g.cfg.World.CellHeight
}

// playfield is the screen area below the HUD.
func (g *Game) playfield() core.Rect {
	hud := g.cfg.World.HUDRows
	return core.NewRect(0, hud, g.runtime.ScreenW, g.runtime.ScreenH-hud)
}

// toWorld maps the center of a screen cell to world coordinates.
func (g *Game) toWorld(col, row int) core.Vec {
	return core.Vec{
		X: (float64(col) + 0.5) * g.cfg.World.CellWidth,
		Y: (float64(row-g.cfg.World.HUDRows) + 0.5) * g.cfg.World.CellHeight,
	}
}

// toCell maps world coordinates to the screen cell that contains them.
func (g *Game) toCell(p core.Vec) (col, row int) {
	col = int(p.X / g.cfg.World.CellWidth)
	row = int(p.Y/g.cfg.World.CellHeight) + g.cfg.World.HUDRows
	return col, row
}

// Step advances the game to the frame timestamp now.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	dt := g.stepper.Tick(now)

	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if !g.session.Running() {
		g.paused = false
		if in.Has(core.ActionConfirm) {
			g.session.Start()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	field := g.playfield()
	for _, p := range in.Pointers {
		if !field.Contains(p.Col, p.Row) {
			continue
		}
		g.session.Command(g.toWorld(p.Col, p.Row), p.Kind)
	}

	g.session.Tick(dt)
	return core.StepResult{State: g.State(), DT: dt}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:   g.session.Inventory.Total(),
		Running: g.session.Running(),
		Paused:  g.paused,
	}
	if last, ok := g.session.LastSummary(); ok && !st.Running {
		st.GameOver = true
		st.Score = last.Inventory.Total()
	}
	return st
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

func init() {
	registry.Register("survival", func() registry.Game {
		return New()
	})
	registry.Register("survival_odds", func() registry.Game {
		return NewOdds()
	})
}
