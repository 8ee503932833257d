package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/biome-survival/internal/core"
	"github.com/vovakirdan/biome-survival/internal/games/survival"
	"github.com/vovakirdan/biome-survival/internal/registry"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

// footerRows is the number of terminal rows below the playfield.
const footerRows = 1

// Controls is the ambience the game screen steers from the keyboard.
type Controls interface {
	survival.Ambience
	Toggle() bool
	Enabled() bool
	VolumeUp() int
	VolumeDown() int
	Level() int
}

// Options carries the platform collaborators of a game screen.
// Every field is optional.
type Options struct {
	Store    *storage.Store
	Logger   *log.Logger
	Ambience Controls
}

type attacher interface {
	Attach(sink survival.UISink, amb survival.Ambience)
}

type resizer interface {
	Resize(screenW, screenH int)
}

type loggerSetter interface {
	SetLogger(logger *log.Logger)
}

// Model is the Bubble Tea model for running a game variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	sink   *RunSink
	amb    Controls
	logger *log.Logger
	keys   GameKeyMap
	help   help.Model
	width  int

	quitting bool
	back     bool
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg holds the full terminal size; the footer row is taken from it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	width := cfg.ScreenW
	cfg.ScreenH = playfieldHeight(cfg.ScreenH)

	if l, ok := game.(loggerSetter); ok {
		l.SetLogger(logger)
	}

	sink := NewRunSink(game.ID(), opts.Store, logger)
	if a, ok := game.(attacher); ok {
		var amb survival.Ambience
		if opts.Ambience != nil {
			amb = opts.Ambience
		}
		a.Attach(sink, amb)
	}

	h := help.New()
	h.Width = width

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		sink:       sink,
		amb:        opts.Ambience,
		logger:     logger,
		keys:       DefaultGameKeyMap(),
		help:       h,
		width:      width,
	}
}

func playfieldHeight(termH int) int {
	if termH-footerRows < 1 {
		return 1
	}
	return termH - footerRows
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game screen ready", "game", m.game.ID(), "w", m.config.ScreenW, "h", m.config.ScreenH, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if cmd, ok := MapMouse(msg); ok {
			m.inputFrame.Point(cmd)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Session actions go to the game;
// music and screen actions are handled here.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.back = true
		m.quitting = true
		return m, tea.Quit
	case core.ActionToggleMusic:
		if m.amb != nil {
			on := m.amb.Toggle()
			m.logger.Debug("music toggled", "on", on)
		}
	case core.ActionVolumeUp:
		if m.amb != nil {
			m.amb.VolumeUp()
		}
	case core.ActionVolumeDown:
		if m.amb != nil {
			m.amb.VolumeDown()
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the live run when the game supports resizing and
// resets it otherwise.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.help.Width = msg.Width
	m.config.ScreenW = msg.Width
	m.config.ScreenH = playfieldHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.logger.Debug("resized", "w", m.config.ScreenW, "h", m.config.ScreenH)

	return m, nil
}

// handleTick steps the game to the tick timestamp.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	result := m.game.Step(now, m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".survival", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

// footer renders the key help and the music state on one line.
func (m Model) footer() string {
	music := musicOff.Render("♪ off")
	if m.amb != nil && m.amb.Enabled() {
		music = musicOn.Render(fmt.Sprintf("♪ %d", m.amb.Level()))
	}

	m.help.Width = m.width - lipgloss.Width(music) - 1
	if m.help.Width < 0 {
		m.help.Width = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, music, " ", footerStyle.Render(m.help.View(m.keys)))
}

// BackToMenu reports whether the player left with the back key.
func (m Model) BackToMenu() bool {
	return m.back
}

// Sink returns the platform sink attached to the game.
func (m Model) Sink() *RunSink {
	return m.sink
}

// Run starts the Bubble Tea program for the given game. It returns true
// when the player asked to go back to the menu rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (bool, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks steer the player
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
