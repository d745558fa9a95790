package world

import "github.com/tomz197/rocksplit/internal/object"

// EventType identifies a fire-and-forget notification for audio and effects.
type EventType int

const (
	ShipFired EventType = iota
	AsteroidHit
	ShipDestroyed
)

func (t EventType) String() string {
	switch t {
	case ShipFired:
		return "ship_fired"
	case AsteroidHit:
		return "asteroid_hit"
	case ShipDestroyed:
		return "ship_destroyed"
	default:
		return "unknown"
	}
}

// Event is emitted during a tick and delivered with that tick's snapshot.
type Event struct {
	Type     EventType
	Position object.Point
	Size     object.AsteroidSize // Set for AsteroidHit
}
