package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/rocksplit/internal/config"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Image returns the sprite tag renderers use for this size.
func (s AsteroidSize) Image() string {
	switch s {
	case AsteroidSmall:
		return "meteorGrey_small2"
	case AsteroidMedium:
		return "meteorGrey_med2"
	case AsteroidLarge:
		return "meteorGrey_big2"
	default:
		return ""
	}
}

// Radius returns the collision radius for this size.
func (s AsteroidSize) Radius(cfg config.Game) float64 {
	switch s {
	case AsteroidSmall:
		return cfg.SmallRadius
	case AsteroidMedium:
		return cfg.MediumRadius
	default:
		return cfg.LargeRadius
	}
}

// Spin returns the rotation in degrees applied every tick for this size.
func (s AsteroidSize) Spin(cfg config.Game) float64 {
	switch s {
	case AsteroidSmall:
		return cfg.SmallSpin
	case AsteroidMedium:
		return cfg.MediumSpin
	default:
		return cfg.LargeSpin
	}
}

// Asteroid is a space rock that splits into smaller rocks when shot.
type Asteroid struct {
	Entity
	Size AsteroidSize
	Spin float64 // Degrees per tick, fixed at creation
}

// NewAsteroid creates a live asteroid of the given size at (x, y).
func NewAsteroid(cfg config.Game, size AsteroidSize, x, y float64, v Velocity) *Asteroid {
	return &Asteroid{
		Entity: Entity{
			Center:   Point{X: x, Y: y},
			Velocity: v,
			Radius:   size.Radius(cfg),
			Alive:    true,
		},
		Size: size,
		Spin: size.Spin(cfg),
	}
}

// NewLargeAsteroid creates a large asteroid at a random position with a
// small random drift.
func NewLargeAsteroid(cfg config.Game, rng *rand.Rand) *Asteroid {
	x := rng.Float64() * cfg.Width
	y := rng.Float64() * cfg.Height
	return NewAsteroid(cfg, AsteroidLarge, x, y, randomDrift(cfg, rng))
}

// NewLargeAsteroidAtEdge creates a large asteroid on a random screen edge,
// drifting roughly toward the center.
func NewLargeAsteroidAtEdge(cfg config.Game, rng *rand.Rand) *Asteroid {
	var x, y float64
	w, h := cfg.Width, cfg.Height

	switch rng.Intn(4) {
	case 0: // Top
		x, y = rng.Float64()*w, h
	case 1: // Bottom
		x, y = rng.Float64()*w, 0
	case 2: // Left
		x, y = 0, rng.Float64()*h
	default: // Right
		x, y = w, rng.Float64()*h
	}

	// Aim at the center with up to ±45° of variation
	angle := math.Atan2(h/2-y, w/2-x)
	angle += (rng.Float64() - 0.5) * math.Pi / 2

	v := Velocity{
		DX: math.Cos(angle) * cfg.LargeSpeed,
		DY: math.Sin(angle) * cfg.LargeSpeed,
	}
	return NewAsteroid(cfg, AsteroidLarge, x, y, v)
}

// randomDrift is the base asteroid velocity: each axis in [-1, LargeSpeed-1).
func randomDrift(cfg config.Game, rng *rand.Rand) Velocity {
	return Velocity{
		DX: rng.Float64()*cfg.LargeSpeed - 1,
		DY: rng.Float64()*cfg.LargeSpeed - 1,
	}
}

// Advance moves the asteroid and applies its spin.
func (a *Asteroid) Advance() {
	a.Entity.Advance()
	a.Angle += a.Spin
}

// Fragments returns the children produced when this asteroid is destroyed.
// The parent is not modified. Small asteroids produce nothing.
func (a *Asteroid) Fragments(cfg config.Game, rng *rand.Rand) []*Asteroid {
	x, y := a.Center.X, a.Center.Y
	speed := cfg.FragmentSpeed()

	switch a.Size {
	case AsteroidLarge:
		up := randomDrift(cfg, rng)
		up.DY = speed
		down := randomDrift(cfg, rng)
		down.DY = -speed
		return []*Asteroid{
			NewAsteroid(cfg, AsteroidMedium, x, y, up),
			NewAsteroid(cfg, AsteroidMedium, x, y, down),
			NewAsteroid(cfg, AsteroidSmall, x, y, Velocity{DX: cfg.LargeSpeed + 1.5, DY: a.Velocity.DY}),
		}
	case AsteroidMedium:
		return []*Asteroid{
			NewAsteroid(cfg, AsteroidSmall, x, y, Velocity{DX: speed, DY: speed}),
			NewAsteroid(cfg, AsteroidSmall, x, y, Velocity{DX: -speed, DY: -speed}),
		}
	default:
		return nil
	}
}
