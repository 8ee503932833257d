package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Soundscape describes the ambience of one biome: a sustained pad, an
// optional noise bed and notes struck at random intervals.
type Soundscape struct {
	Pad     []float64 // Hz
	PadGain float64
	Noise   float64 // Gain of the filtered noise bed

	Notes    []float64 // Hz
	NoteGain float64
	Decay    time.Duration
	MinGap   time.Duration
	MaxGap   time.Duration
	Arpeggio bool // Walk Notes in order instead of picking at random
}

var soundscapes = map[string]Soundscape{
	"canterbury": {
		Pad:      []float64{130.81, 164.81, 196.00},
		PadGain:  0.05,
		Notes:    []float64{261.63, 329.63, 392.00, 523.25},
		NoteGain: 0.08,
		Decay:    900 * time.Millisecond,
		MinGap:   2 * time.Second,
		MaxGap:   3500 * time.Millisecond,
		Arpeggio: true,
	},
	"manaus": {
		Noise:    0.03,
		Notes:    []float64{220, 247.5, 275, 330, 370},
		NoteGain: 0.1,
		Decay:    800 * time.Millisecond,
		MinGap:   3 * time.Second,
		MaxGap:   6 * time.Second,
	},
	"phoenix": {
		Pad:      []float64{110},
		PadGain:  0.06,
		Notes:    []float64{220, 261.63, 293.66, 369.99, 415.30},
		NoteGain: 0.06,
		Decay:    3 * time.Second,
		MinGap:   5 * time.Second,
		MaxGap:   10 * time.Second,
	},
	"yakutsk": {
		Noise:    0.04,
		Notes:    []float64{523.25, 659.25, 783.99, 1046.5},
		NoteGain: 0.07,
		Decay:    2500 * time.Millisecond,
		MinGap:   4 * time.Second,
		MaxGap:   8 * time.Second,
	},
	"lagos": {
		Pad:      []float64{155.56},
		PadGain:  0.05,
		Notes:    []float64{65.41},
		NoteGain: 0.15,
		Decay:    300 * time.Millisecond,
		MinGap:   2500 * time.Millisecond,
		MaxGap:   4 * time.Second,
	},
}

// Lookup returns the soundscape registered under key.
func Lookup(key string) (Soundscape, bool) {
	s, ok := soundscapes[key]
	return s, ok
}

// Keys returns the known soundscape keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(soundscapes))
	for k := range soundscapes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// scape streams a Soundscape forever. Notes are scheduled in samples so
// the stream is reproducible for a given seed.
type scape struct {
	sr   beep.SampleRate
	def  Soundscape
	rng  *rand.Rand
	mix  *beep.Mixer
	next int // samples until the next note
	step int
}

func newScape(sr beep.SampleRate, def Soundscape, seed int64) (*scape, error) {
	s := &scape{
		sr:  sr,
		def: def,
		rng: rand.New(rand.NewSource(seed)),
		mix: &beep.Mixer{},
	}

	for _, f := range def.Pad {
		tone, err := generators.SineTone(sr, f)
		if err != nil {
			return nil, fmt.Errorf("audio: pad tone %.2fHz: %w", f, err)
		}
		s.mix.Add(&effects.Gain{Streamer: tone, Gain: def.PadGain - 1})
	}
	if def.Noise > 0 {
		s.mix.Add(&noiseBed{rng: rand.New(rand.NewSource(seed + 1)), gain: def.Noise, smooth: 0.08})
	}

	s.next = s.gap()
	return s, nil
}

// gap draws the wait before the next note, in samples.
func (s *scape) gap() int {
	if len(s.def.Notes) == 0 {
		return math.MaxInt32
	}
	span := s.def.MaxGap - s.def.MinGap
	d := s.def.MinGap + time.Duration(s.rng.Float64()*float64(span))
	return atLeastOne(s.sr.N(d))
}

func (s *scape) strike() {
	var freq float64
	if s.def.Arpeggio {
		freq = s.def.Notes[s.step%len(s.def.Notes)]
		s.step++
	} else {
		freq = s.def.Notes[s.rng.Intn(len(s.def.Notes))]
	}
	s.mix.Add(newPluck(s.sr, freq, s.def.NoteGain, s.def.Decay))
}

func (s *scape) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		if s.next <= 0 {
			s.strike()
			s.next = s.gap()
		}
		chunk := min(len(samples)-filled, s.next)
		s.mix.Stream(samples[filled : filled+chunk])
		filled += chunk
		s.next -= chunk
	}
	return len(samples), true
}

func (s *scape) Err() error { return nil }

// atLeastOne keeps a sample count positive.
func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// noiseBed is white noise through a one-pole low-pass, heard as rain or wind.
type noiseBed struct {
	rng    *rand.Rand
	gain   float64
	smooth float64
	y      float64
}

func (b *noiseBed) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		x := b.rng.Float64()*2 - 1
		b.y += b.smooth * (x - b.y)
		v := b.y * b.gain
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (b *noiseBed) Err() error { return nil }

// pluck is a sine note with a short attack and an exponential tail.
type pluck struct {
	freq   float64
	gain   float64
	phase  float64
	step   float64
	pos    int
	attack int
	total  int
	tau    float64 // samples per e-fold of the tail
}

func newPluck(sr beep.SampleRate, freq, gain float64, decay time.Duration) *pluck {
	total := atLeastOne(sr.N(decay))
	return &pluck{
		freq:   freq,
		gain:   gain,
		step:   freq / float64(sr),
		attack: atLeastOne(sr.N(10 * time.Millisecond)),
		total:  total,
		tau:    float64(total) / 5,
	}
}

func (p *pluck) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if p.pos >= p.total {
			return i, i > 0
		}
		env := math.Exp(-float64(p.pos) / p.tau)
		if p.pos < p.attack {
			env *= float64(p.pos) / float64(p.attack)
		}
		v := p.gain * env * math.Sin(2*math.Pi*p.phase)
		samples[i][0] = v
		samples[i][1] = v

		p.phase += p.step
		p.phase -= math.Floor(p.phase)
		p.pos++
	}
	return len(samples), true
}

func (p *pluck) Err() error { return nil }
