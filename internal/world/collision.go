package world

import (
	"github.com/tomz197/rocksplit/internal/object"
	"github.com/tomz197/rocksplit/internal/physics"
)

// checkCollisions runs every pairwise pass in a fixed order, then appends
// queued fragments and purges dead entities.
func (w *World) checkCollisions() {
	w.checkShipAsteroids()
	w.checkShipBullets()
	w.checkBulletAsteroids()

	w.flushSpawned()
	w.cleanupZombies()
}

func tooClose(a, b *object.Entity) bool {
	return physics.BoxesOverlap(a.Center.X, a.Center.Y, a.Radius, b.Center.X, b.Center.Y, b.Radius)
}

// checkShipAsteroids destroys the ship when any live asteroid touches it.
func (w *World) checkShipAsteroids() {
	for _, a := range w.asteroids {
		if !w.ship.Alive {
			return
		}
		if a.Alive && tooClose(&a.Entity, &w.ship.Entity) {
			w.destroyShip()
		}
	}
}

// checkShipBullets destroys the ship when one of its own bullets comes back
// around after the grace period.
func (w *World) checkShipBullets() {
	for _, b := range w.bullets {
		if !w.ship.Alive {
			return
		}
		if !b.Alive || !b.PastGrace(w.cfg.BulletGrace) {
			continue
		}
		if tooClose(&b.Entity, &w.ship.Entity) {
			b.Kill()
			w.destroyShip()
		}
	}
}

func (w *World) destroyShip() {
	w.ship.Kill()
	w.emit(Event{Type: ShipDestroyed, Position: w.ship.Center})
}

// checkBulletAsteroids splits every asteroid hit by a live bullet.
// A bullet dies on its first hit, so it scores at most one asteroid per
// tick; asteroids are considered in collection order.
func (w *World) checkBulletAsteroids() {
	if len(w.bullets) == 0 || len(w.asteroids) == 0 {
		return
	}

	w.grid.Clear()
	for i, a := range w.asteroids {
		if a.Alive {
			w.grid.Insert(a.Center.X, a.Center.Y, i)
		}
	}

	for _, b := range w.bullets {
		if !b.Alive {
			continue
		}
		w.candidates = w.grid.Candidates(b.Center.X, b.Center.Y, w.candidates)
		for _, i := range w.candidates {
			a := w.asteroids[i]
			if !a.Alive || !tooClose(&b.Entity, &a.Entity) {
				continue
			}
			b.Kill()
			w.splitAsteroid(a)
			break
		}
	}
}

// splitAsteroid destroys a and queues its fragments.
func (w *World) splitAsteroid(a *object.Asteroid) {
	a.Kill()
	w.spawned = append(w.spawned, a.Fragments(w.cfg, w.rng)...)
	w.emit(Event{Type: AsteroidHit, Position: a.Center, Size: a.Size})
}

// flushSpawned adds queued fragments to the asteroid collection.
func (w *World) flushSpawned() {
	w.asteroids = append(w.asteroids, w.spawned...)
	clear(w.spawned)
	w.spawned = w.spawned[:0]
}

// cleanupZombies removes dead entities from their collections.
func (w *World) cleanupZombies() {
	w.asteroids = compact(w.asteroids)
	w.bullets = compact(w.bullets)
}

// compact filters destroyed items in place and clears the freed tail.
func compact[T interface{ IsDestroyed() bool }](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
