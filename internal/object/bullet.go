package object

import "github.com/tomz197/rocksplit/internal/config"

// Bullet is a short-lived projectile fired by the ship.
type Bullet struct {
	Entity
	TicksAlive int
}

// NewBullet creates a bullet at (x, y) already fired toward angle (degrees).
func NewBullet(cfg config.Game, x, y, angle float64) *Bullet {
	b := &Bullet{
		Entity: Entity{
			Center: Point{X: x, Y: y},
			Radius: cfg.BulletRadius,
			Angle:  angle,
			Alive:  true,
		},
	}
	b.Fire(cfg, angle)
	return b
}

// Fire sets the bullet's velocity toward angle, ignoring any inherited motion.
func (b *Bullet) Fire(cfg config.Game, angle float64) {
	b.Velocity = headingVelocity(angle, cfg.BulletSpeed)
}

// Age counts one tick of life and expires the bullet at lifetime.
// The tick that fires a bullet also ages it, so a bullet fired on tick T
// is dead from tick T+lifetime-1.
func (b *Bullet) Age(lifetime int) {
	b.TicksAlive++
	if b.TicksAlive >= lifetime {
		b.Alive = false
	}
}

// PastGrace reports whether the bullet may now hit the ship that fired it.
func (b *Bullet) PastGrace(grace int) bool {
	return b.TicksAlive > grace
}
