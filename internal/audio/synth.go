package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tomz197/rocksplit/internal/object"
	"github.com/tomz197/rocksplit/internal/world"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Durations of the procedural cues.
const (
	shotDuration     = 70 * time.Millisecond
	hitDuration      = 250 * time.Millisecond
	gameOverNote     = 220 * time.Millisecond
	attackDuration   = 5 * time.Millisecond
	shortRelease     = 40 * time.Millisecond
	explosionRelease = 180 * time.Millisecond
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a streamer producing duration worth of the given wave.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; 0 silences it.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// shotSound is a short high blip.
func shotSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(1320, shotDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, shotDuration, attackDuration, shortRelease, rate), 0.25)
}

// hitSound is a noise burst over a low rumble; larger rocks rumble deeper.
func hitSound(size object.AsteroidSize, rate beep.SampleRate) beep.Streamer {
	rumbleFreq := 160.0 / float64(max(int(size), 1))

	noise := NewEnvelope(NewOscillator(0, hitDuration, WaveNoise, rate), hitDuration, attackDuration, explosionRelease, rate)
	rumble := NewEnvelope(NewOscillator(rumbleFreq, hitDuration, WaveSine, rate), hitDuration, attackDuration, explosionRelease, rate)

	return newVolume(beep.Mix(newVolume(noise, 0.4), newVolume(rumble, 0.6)), 0.5)
}

// gameOverSound is a falling three-note saw line.
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{392, 311.13, 196}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		osc := NewOscillator(f, gameOverNote, WaveSaw, rate)
		seq = append(seq, NewEnvelope(osc, gameOverNote, attackDuration, shortRelease, rate))
	}
	return newVolume(beep.Seq(seq...), 0.35)
}

// SoundFor returns the cue for ev, or nil when the event is silent.
func SoundFor(ev world.Event, rate beep.SampleRate) beep.Streamer {
	switch ev.Type {
	case world.ShipFired:
		return shotSound(rate)
	case world.AsteroidHit:
		return hitSound(ev.Size, rate)
	case world.ShipDestroyed:
		return gameOverSound(rate)
	}
	return nil
}
