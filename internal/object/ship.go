package object

import (
	"math"

	"github.com/tomz197/rocksplit/internal/config"
)

// Ship is the player-controlled spaceship.
// Angle 0 points the nose up; headings used for motion are Angle±90.
type Ship struct {
	Entity
}

// NewShip creates a ship at the center of the screen.
func NewShip(cfg config.Game) *Ship {
	return &Ship{
		Entity: Entity{
			Center: Point{
				X: math.Floor(cfg.Width / 2),
				Y: math.Floor(cfg.Height / 2),
			},
			Radius: cfg.ShipRadius,
			Alive:  true,
		},
	}
}

// Heading returns the direction of travel in degrees for forward thrust.
func (s *Ship) Heading() float64 {
	return s.Angle + 90
}

// Turn rotates the ship by delta degrees.
func (s *Ship) Turn(delta float64) {
	s.Angle += delta
}

// Thrust sets the velocity toward facing (degrees). Components are capped
// at the screen dimensions to keep values bounded.
func (s *Ship) Thrust(cfg config.Game, facing float64) {
	v := headingVelocity(facing, cfg.ShipThrust)
	v.DX = math.Max(-cfg.Width, math.Min(v.DX, cfg.Width))
	v.DY = math.Max(-cfg.Height, math.Min(v.DY, cfg.Height))
	s.Velocity = v
}

// Advance moves the ship and keeps it inside the inset playfield.
// Both axes are clamped independently.
func (s *Ship) Advance(cfg config.Game) {
	s.Entity.Advance()

	inset := cfg.ShipInset
	s.Center.X = math.Max(inset, math.Min(s.Center.X, cfg.Width-inset))
	s.Center.Y = math.Max(inset, math.Min(s.Center.Y, cfg.Height-inset))
}
