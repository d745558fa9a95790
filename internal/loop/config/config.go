// Package config centralizes the presentation and session parameters.
package config

import "time"

// Simulation rate. The world advances exactly one tick per frame.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Max render resolution in terminal cells. Larger terminals get a
// centered, bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Rendering scale relative to collision radii.
const (
	AsteroidScale = 2.0
	ShipScale     = 0.6
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
