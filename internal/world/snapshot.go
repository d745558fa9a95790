package world

import "github.com/tomz197/rocksplit/internal/object"

// EntityView is the read-only render data for one live entity.
type EntityView struct {
	Kind     object.Kind
	Position object.Point
	Angle    float64
	Radius   float64
	Size     object.AsteroidSize // Zero for non-asteroids
	Image    string
}

// Snapshot is the state exposed to renderers after a tick.
// It shares nothing with the world and may be kept across ticks.
type Snapshot struct {
	Tick          uint64
	Entities      []EntityView
	Asteroids     int
	Bullets       int
	ShipDestroyed bool
	Explosion     *EntityView // Where the ship died, once destroyed
	Banner        string      // GameOverImage once the ship is destroyed
	Events        []Event
	Width         float64
	Height        float64
}

// Sprite tags for the non-asteroid kinds.
const (
	ShipImage      = "playerShip1_orange"
	BulletImage    = "laserBlue01"
	ExplosionImage = "explosion"
	GameOverImage  = "gameover"
)

// buildSnapshot copies the live entities into a fresh Snapshot.
func (w *World) buildSnapshot() *Snapshot {
	s := &Snapshot{
		Tick:          w.tick,
		Entities:      make([]EntityView, 0, len(w.asteroids)+len(w.bullets)+1),
		ShipDestroyed: !w.ship.Alive,
		Events:        w.events,
		Width:         w.cfg.Width,
		Height:        w.cfg.Height,
	}
	w.events = nil

	for _, a := range w.asteroids {
		if !a.Alive {
			continue
		}
		s.Asteroids++
		s.Entities = append(s.Entities, EntityView{
			Kind:     object.KindAsteroid,
			Position: a.Center,
			Angle:    a.Angle,
			Radius:   a.Radius,
			Size:     a.Size,
			Image:    a.Size.Image(),
		})
	}
	for _, b := range w.bullets {
		if !b.Alive {
			continue
		}
		s.Bullets++
		s.Entities = append(s.Entities, EntityView{
			Kind:     object.KindBullet,
			Position: b.Center,
			Angle:    b.Angle,
			Radius:   b.Radius,
			Image:    BulletImage,
		})
	}
	if w.ship.Alive {
		s.Entities = append(s.Entities, EntityView{
			Kind:     object.KindShip,
			Position: w.ship.Center,
			Angle:    w.ship.Angle,
			Radius:   w.ship.Radius,
			Image:    ShipImage,
		})
	} else {
		s.Explosion = &EntityView{
			Kind:     object.KindShip,
			Position: w.ship.Center,
			Angle:    w.ship.Angle,
			Radius:   w.ship.Radius,
			Image:    ExplosionImage,
		}
		s.Banner = GameOverImage
	}
	return s
}
