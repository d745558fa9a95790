package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Validate for unusable game settings.
var ErrInvalidConfig = errors.New("invalid game config")

// Game holds every tunable simulation parameter.
// It is passed by value into the world and never mutated afterwards.
type Game struct {
	// Playfield
	Width  float64
	Height float64

	InitialAsteroids int

	// Bullets
	BulletRadius   float64
	BulletSpeed    float64
	BulletLifetime int // Ticks before a bullet expires
	BulletGrace    int // Ticks before a bullet may hit the ship

	// Ship
	ShipTurn   float64 // Degrees per tick
	ShipThrust float64 // Velocity magnitude set by a thrust
	ShipRadius float64
	ShipInset  float64 // Clamp distance from each screen edge

	// Asteroids
	LargeSpeed   float64
	LargeRadius  float64
	MediumRadius float64
	SmallRadius  float64
	LargeSpin    float64 // Degrees per tick
	MediumSpin   float64
	SmallSpin    float64

	// Replenishment (0 disables)
	ReplenishThreshold int
	ReplenishWave      int

	// Seed for the world's random source. 0 means time based.
	Seed int64
}

// DefaultGame returns the classic arcade settings.
func DefaultGame() Game {
	return Game{
		Width:  800,
		Height: 600,

		InitialAsteroids: 5,

		BulletRadius:   30,
		BulletSpeed:    10,
		BulletLifetime: 60,
		BulletGrace:    30,

		ShipTurn:   3,
		ShipThrust: 2,
		ShipRadius: 30,
		ShipInset:  20,

		LargeSpeed:   1.5,
		LargeRadius:  20,
		MediumRadius: 8,
		SmallRadius:  5,
		LargeSpin:    1,
		MediumSpin:   -2,
		SmallSpin:    5,

		ReplenishThreshold: 0,
		ReplenishWave:      7,
	}
}

// FragmentSpeed is the axis speed given to split fragments.
func (g Game) FragmentSpeed() float64 {
	return g.LargeSpeed + 2
}

// Validate reports settings that would produce non-finite or out-of-range
// motion. It is meant to run once at startup.
func (g Game) Validate() error {
	floats := []struct {
		name  string
		value float64
	}{
		{"Width", g.Width},
		{"Height", g.Height},
		{"BulletRadius", g.BulletRadius},
		{"BulletSpeed", g.BulletSpeed},
		{"ShipTurn", g.ShipTurn},
		{"ShipThrust", g.ShipThrust},
		{"ShipRadius", g.ShipRadius},
		{"ShipInset", g.ShipInset},
		{"LargeSpeed", g.LargeSpeed},
		{"LargeRadius", g.LargeRadius},
		{"MediumRadius", g.MediumRadius},
		{"SmallRadius", g.SmallRadius},
		{"LargeSpin", g.LargeSpin},
		{"MediumSpin", g.MediumSpin},
		{"SmallSpin", g.SmallSpin},
	}
	for _, f := range floats {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"Width", g.Width},
		{"Height", g.Height},
		{"BulletRadius", g.BulletRadius},
		{"BulletSpeed", g.BulletSpeed},
		{"ShipThrust", g.ShipThrust},
		{"ShipRadius", g.ShipRadius},
		{"LargeSpeed", g.LargeSpeed},
		{"LargeRadius", g.LargeRadius},
		{"MediumRadius", g.MediumRadius},
		{"SmallRadius", g.SmallRadius},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	if g.ShipInset < 0 || 2*g.ShipInset >= math.Min(g.Width, g.Height) {
		return fmt.Errorf("%w: ShipInset %v does not fit a %vx%v screen", ErrInvalidConfig, g.ShipInset, g.Width, g.Height)
	}

	// Wrapping moves an entity by at most one screen per tick.
	limit := math.Min(g.Width, g.Height)
	if g.BulletSpeed >= limit || g.FragmentSpeed() >= limit {
		return fmt.Errorf("%w: per-tick speeds must be smaller than the screen", ErrInvalidConfig)
	}

	if g.InitialAsteroids < 0 {
		return fmt.Errorf("%w: InitialAsteroids must not be negative", ErrInvalidConfig)
	}
	if g.BulletLifetime <= 0 {
		return fmt.Errorf("%w: BulletLifetime must be positive", ErrInvalidConfig)
	}
	if g.BulletGrace < 0 {
		return fmt.Errorf("%w: BulletGrace must not be negative", ErrInvalidConfig)
	}
	if g.ReplenishThreshold < 0 || (g.ReplenishThreshold > 0 && g.ReplenishWave <= 0) {
		return fmt.Errorf("%w: replenishment needs a positive wave size", ErrInvalidConfig)
	}
	return nil
}

// FromEnv applies ROCKSPLIT_* environment overrides on top of base.
func FromEnv(base Game) (Game, error) {
	g := base
	var err error

	floats := []struct {
		key string
		dst *float64
	}{
		{"ROCKSPLIT_WIDTH", &g.Width},
		{"ROCKSPLIT_HEIGHT", &g.Height},
		{"ROCKSPLIT_BULLET_SPEED", &g.BulletSpeed},
		{"ROCKSPLIT_SHIP_TURN", &g.ShipTurn},
		{"ROCKSPLIT_SHIP_THRUST", &g.ShipThrust},
		{"ROCKSPLIT_LARGE_SPEED", &g.LargeSpeed},
	}
	for _, f := range floats {
		if *f.dst, err = GetEnvFloat(f.key, *f.dst); err != nil {
			return base, err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"ROCKSPLIT_ASTEROIDS", &g.InitialAsteroids},
		{"ROCKSPLIT_BULLET_LIFETIME", &g.BulletLifetime},
		{"ROCKSPLIT_REPLENISH_THRESHOLD", &g.ReplenishThreshold},
		{"ROCKSPLIT_REPLENISH_WAVE", &g.ReplenishWave},
	}
	for _, i := range ints {
		if *i.dst, err = GetEnvInt(i.key, *i.dst); err != nil {
			return base, err
		}
	}

	seed, err := GetEnvInt("ROCKSPLIT_SEED", int(g.Seed))
	if err != nil {
		return base, err
	}
	g.Seed = int64(seed)

	return g, nil
}
