// Package world owns the simulation: it applies player commands, runs the
// collision and fragmentation engine, advances every entity and exposes a
// read-only snapshot after each tick.
//
// A World is not safe for concurrent use; one driver calls Tick at a fixed
// rate.
package world

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/rocksplit/internal/config"
	"github.com/tomz197/rocksplit/internal/object"
	"github.com/tomz197/rocksplit/internal/physics"
)

// World holds every entity of one game.
type World struct {
	cfg config.Game
	rng *rand.Rand

	ship      *object.Ship
	asteroids []*object.Asteroid
	bullets   []*object.Bullet

	spawned []*object.Asteroid // Fragments waiting for the end of the collision pass
	events  []Event
	tick    uint64
	last    *Snapshot

	// Broad phase for bullet-asteroid checks, reused every tick
	grid       *physics.SpatialGrid
	candidates []int
}

// New validates cfg and creates a world with the ship centered and the
// initial large asteroids placed at random. A nil rng is seeded from
// cfg.Seed, or from the clock when the seed is zero.
func New(cfg config.Game, rng *rand.Rand) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	reach := cfg.BulletRadius + math.Max(cfg.LargeRadius, math.Max(cfg.MediumRadius, cfg.SmallRadius))

	w := &World{
		cfg:       cfg,
		rng:       rng,
		ship:      object.NewShip(cfg),
		asteroids: make([]*object.Asteroid, 0, cfg.InitialAsteroids*3),
		grid:      physics.NewSpatialGrid(cfg.Width, cfg.Height, reach),
	}
	for i := 0; i < cfg.InitialAsteroids; i++ {
		w.asteroids = append(w.asteroids, object.NewLargeAsteroid(cfg, rng))
	}
	w.last = w.buildSnapshot()
	return w, nil
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.Game {
	return w.cfg
}

// Ship returns the player's ship.
func (w *World) Ship() *object.Ship {
	return w.ship
}

// Asteroids returns the asteroid collection. Callers must not modify it.
func (w *World) Asteroids() []*object.Asteroid {
	return w.asteroids
}

// Bullets returns the bullet collection. Callers must not modify it.
func (w *World) Bullets() []*object.Bullet {
	return w.bullets
}

// TickCount returns the number of completed ticks.
func (w *World) TickCount() uint64 {
	return w.tick
}

// Snapshot returns the snapshot produced by the last tick.
func (w *World) Snapshot() *Snapshot {
	return w.last
}

// GameOver reports whether the ship has been destroyed.
func (w *World) GameOver() bool {
	return !w.ship.Alive
}

// Tick advances the simulation by one step:
// commands, collisions and cleanup, asteroids, bullets, ship, replenishment.
func (w *World) Tick(cmds Commands) *Snapshot {
	w.tick++

	w.applyCommands(cmds)
	w.checkCollisions()

	for _, a := range w.asteroids {
		if !a.Alive {
			continue
		}
		a.Advance()
		a.WrapToScreen(w.cfg.Width, w.cfg.Height)
	}

	for _, b := range w.bullets {
		if !b.Alive {
			continue
		}
		b.Advance()
		b.WrapToScreen(w.cfg.Width, w.cfg.Height)
		b.Age(w.cfg.BulletLifetime)
	}

	if w.ship.Alive {
		w.ship.Advance(w.cfg)
	}

	w.replenish()

	w.last = w.buildSnapshot()
	return w.last
}

// applyCommands turns held intents into ship motion and new bullets.
// A destroyed ship ignores everything.
func (w *World) applyCommands(cmds Commands) {
	if !w.ship.Alive || cmds.Empty() {
		return
	}

	if cmds.Has(TurnLeft) {
		w.ship.Turn(w.cfg.ShipTurn)
	}
	if cmds.Has(TurnRight) {
		w.ship.Turn(-w.cfg.ShipTurn)
	}
	if cmds.Has(ThrustForward) {
		w.ship.Thrust(w.cfg, w.ship.Heading())
	}
	if cmds.Has(ThrustReverse) {
		w.ship.Thrust(w.cfg, w.ship.Angle-90)
	}
	if cmds.Has(Fire) {
		w.fire()
	}
}

// fire launches a bullet from the ship's center along its heading.
func (w *World) fire() {
	b := object.NewBullet(w.cfg, w.ship.Center.X, w.ship.Center.Y, w.ship.Heading())
	w.bullets = append(w.bullets, b)
	w.emit(Event{Type: ShipFired, Position: b.Center})
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// liveAsteroids counts asteroids that have not been destroyed.
func (w *World) liveAsteroids() int {
	n := 0
	for _, a := range w.asteroids {
		if a.Alive {
			n++
		}
	}
	return n
}
