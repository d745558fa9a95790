// Package audio turns world events into sound.
package audio

import (
	"io"
	"sync"

	"github.com/tomz197/rocksplit/internal/world"
)

// Sink consumes world events that have an audible cue.
// Play must not block the simulation loop.
type Sink interface {
	Play(ev world.Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Play(world.Event) {}

// Bell rings the terminal bell on hits and on ship destruction.
// Firing is too frequent for a bell and stays silent.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a Bell writing to w, usually the session's terminal.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(ev world.Event) {
	if ev.Type == world.ShipFired {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

var (
	_ Sink = Nop{}
	_ Sink = (*Bell)(nil)
	_ Sink = (*Player)(nil)
)
