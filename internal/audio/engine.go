// Package audio plays the procedural ambience of the current biome.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/biome-survival/internal/games/survival"
)

const (
	sampleRate = beep.SampleRate(44100)

	// MaxLevel is the loudest volume step; 0 is silent.
	MaxLevel     = 10
	DefaultLevel = 6
)

// Engine streams one biome soundscape at a time. It starts detached; Start
// hands the stream to the speaker. All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	mixer  *beep.Mixer
	volume *effects.Volume
	ctrl   *beep.Ctrl

	key     string
	level   int
	seed    int64
	playing bool // speaker owns the stream

	logger *log.Logger
}

// New creates a detached engine. seed makes note scheduling reproducible.
func New(logger *log.Logger, seed int64) *Engine {
	mixer := &beep.Mixer{}
	e := &Engine{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
		level:  DefaultLevel,
		seed:   seed,
		logger: logger,
	}
	e.ctrl = &beep.Ctrl{Streamer: e.volume}
	e.applyLevel()
	return e
}

// Start opens the audio device and begins playback.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.playing {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(e.ctrl)
	e.playing = true
	return nil
}

// Close stops playback. The engine can keep tracking state afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.locked(func() {
		e.mixer.Clear()
	})
	if e.playing {
		speaker.Clear()
		e.playing = false
	}
	e.key = ""
}

// SetBiome switches to the biome's soundscape. Unknown soundscapes fall
// silent; the same soundscape keeps playing without a restart.
func (e *Engine) SetBiome(b survival.Biome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b.Soundscape == e.key {
		return
	}
	e.key = b.Soundscape

	def, ok := Lookup(b.Soundscape)
	if !ok {
		e.logger.Warn("no soundscape for biome", "biome", b.Name, "key", b.Soundscape)
		e.locked(func() { e.mixer.Clear() })
		return
	}

	e.seed++
	sc, err := newScape(sampleRate, def, e.seed)
	if err != nil {
		e.logger.Warn("soundscape unavailable", "key", b.Soundscape, "err", err)
		e.locked(func() { e.mixer.Clear() })
		return
	}

	e.locked(func() {
		e.mixer.Clear()
		e.mixer.Add(sc)
	})
	e.logger.Debug("soundscape", "biome", b.Name, "key", b.Soundscape)
}

// Silence drops the current soundscape but keeps the device open, so the
// next SetBiome starts from scratch.
func (e *Engine) Silence() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.locked(func() { e.mixer.Clear() })
	e.key = ""
}

// Key returns the soundscape currently playing.
func (e *Engine) Key() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.key
}

// Toggle mutes or unmutes the ambience and returns whether it is now on.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	var on bool
	e.locked(func() {
		e.ctrl.Paused = !e.ctrl.Paused
		on = !e.ctrl.Paused
	})
	return on
}

// Enabled reports whether the ambience is unmuted.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	var on bool
	e.locked(func() { on = !e.ctrl.Paused })
	return on
}

// VolumeUp raises the volume one step and returns the new level.
func (e *Engine) VolumeUp() int {
	return e.step(1)
}

// VolumeDown lowers the volume one step and returns the new level.
func (e *Engine) VolumeDown() int {
	return e.step(-1)
}

// Level returns the volume step in [0, MaxLevel].
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

func (e *Engine) step(delta int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.level = max(0, min(MaxLevel, e.level+delta))
	e.applyLevel()
	return e.level
}

// applyLevel maps the volume step onto the Volume effect. Caller holds mu.
func (e *Engine) applyLevel() {
	e.locked(func() {
		if e.level <= 0 {
			e.volume.Silent = true
			e.volume.Volume = 0
			return
		}
		e.volume.Silent = false
		e.volume.Volume = math.Log2(float64(e.level) / MaxLevel)
	})
}

// Streamer returns the output stream, for rendering without a device.
func (e *Engine) Streamer() beep.Streamer {
	return e.ctrl
}

// locked runs fn under the speaker lock when the speaker is playing.
func (e *Engine) locked(fn func()) {
	if e.playing {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
