package world

import (
	"math"

	"github.com/tomz197/rocksplit/internal/object"
)

// replenish spawns a fresh wave of large asteroids on the screen edges once
// the field drops to the configured threshold. Disabled when the threshold
// is zero. Spawns never touch the ship.
func (w *World) replenish() {
	if w.cfg.ReplenishThreshold <= 0 || !w.ship.Alive {
		return
	}
	if w.liveAsteroids() > w.cfg.ReplenishThreshold {
		return
	}
	for i := 0; i < w.cfg.ReplenishWave; i++ {
		a := object.NewLargeAsteroidAtEdge(w.cfg, w.rng)
		if !w.clearOfShip(a) {
			continue
		}
		w.asteroids = append(w.asteroids, a)
	}
}

// clearOfShip moves an edge spawn that would touch the ship half an edge
// along the same edge. It reports false if the asteroid still touches it.
func (w *World) clearOfShip(a *object.Asteroid) bool {
	if !tooClose(&a.Entity, &w.ship.Entity) {
		return true
	}
	if a.Center.Y == 0 || a.Center.Y == w.cfg.Height {
		a.Center.X = math.Mod(a.Center.X+w.cfg.Width/2, w.cfg.Width)
	} else {
		a.Center.Y = math.Mod(a.Center.Y+w.cfg.Height/2, w.cfg.Height)
	}
	return !tooClose(&a.Entity, &w.ship.Entity)
}
