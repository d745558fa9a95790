package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/rocksplit/internal/world"
)

// SampleRate is the output rate used by Player.
const SampleRate = beep.SampleRate(44100)

// Player mixes event cues onto the local speaker.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewPlayer opens the speaker and starts an empty mixer on it.
// volume is a linear gain in [0, 1].
func NewPlayer(volume float64) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}

	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	speaker.Play(newVolume(p.mixer, volume))
	return p, nil
}

// Play queues the cue for ev. It returns immediately.
func (p *Player) Play(ev world.Event) {
	s := SoundFor(ev, SampleRate)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	speaker.Clear()
	speaker.Close()
}
