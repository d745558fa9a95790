// Package object defines the kinematic game entities: the ship, its bullets
// and the asteroid family. Entities hold plain state; the world package
// decides when they move and collide.
package object

import "math"

// Point is a screen-space position.
type Point struct {
	X, Y float64
}

// Velocity is a per-tick displacement.
type Velocity struct {
	DX, DY float64
}

// Kind identifies an entity for renderers.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Entity is the state shared by every game object.
type Entity struct {
	Center     Point
	Velocity   Velocity
	Radius     float64
	Angle      float64 // Degrees
	Alive      bool
	HitCounter int
}

// Advance moves the entity by one tick of velocity.
func (e *Entity) Advance() {
	e.Center.X += e.Velocity.DX
	e.Center.Y += e.Velocity.DY
}

// WrapToScreen teleports the entity to the opposite edge once it leaves
// the [0,width]x[0,height] playfield.
func (e *Entity) WrapToScreen(width, height float64) {
	if e.Center.X < 0 {
		e.Center.X = width
	}
	if e.Center.X > width {
		e.Center.X = 0
	}
	if e.Center.Y > height {
		e.Center.Y = 0
	}
	if e.Center.Y < 0 {
		e.Center.Y = height
	}
}

// Kill marks the entity dead and records the hit.
func (e *Entity) Kill() {
	e.HitCounter++
	e.Alive = false
}

// IsDestroyed reports whether the entity is waiting for cleanup.
func (e *Entity) IsDestroyed() bool {
	return !e.Alive
}

// headingVelocity converts a heading in degrees to a velocity of the given magnitude.
func headingVelocity(angle, speed float64) Velocity {
	rad := angle * math.Pi / 180
	return Velocity{
		DX: math.Cos(rad) * speed,
		DY: math.Sin(rad) * speed,
	}
}
