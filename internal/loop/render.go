package loop

import (
	"math"

	"github.com/tomz197/rocksplit/internal/draw"
	"github.com/tomz197/rocksplit/internal/fx"
	loopconfig "github.com/tomz197/rocksplit/internal/loop/config"
	"github.com/tomz197/rocksplit/internal/object"
	"github.com/tomz197/rocksplit/internal/world"
)

// vertex is a polygon corner in polar form around an entity center.
type vertex struct {
	angle float64 // Degrees
	scale float64 // Fraction of the drawn radius
}

// Jagged outlines per asteroid size, so the spin is visible.
var asteroidShapes = map[object.AsteroidSize][]vertex{
	object.AsteroidLarge: {
		{0, 1}, {35, 0.8}, {70, 1}, {110, 0.9}, {150, 1},
		{190, 0.75}, {230, 1}, {270, 0.85}, {310, 1},
	},
	object.AsteroidMedium: {
		{0, 1}, {60, 0.8}, {120, 1}, {180, 0.85}, {240, 1}, {300, 0.75},
	},
	object.AsteroidSmall: {
		{0, 1}, {90, 0.8}, {180, 1}, {270, 0.8},
	},
}

// Ship outline relative to the heading.
var shipShape = []vertex{
	{0, 1}, {140, 0.8}, {180, 0.3}, {220, 0.8},
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// drawWorld plots every entity of snap onto the canvas.
func drawWorld(c *draw.Canvas, snap *world.Snapshot) {
	for _, e := range snap.Entities {
		switch e.Kind {
		case object.KindAsteroid:
			drawOutline(c, e.Position, asteroidShapes[e.Size], e.Angle, e.Radius*loopconfig.AsteroidScale, false)
		case object.KindShip:
			drawOutline(c, e.Position, shipShape, e.Angle+90, e.Radius*loopconfig.ShipScale, true)
		case object.KindBullet:
			c.Set(e.Position.X, e.Position.Y)
		}
	}

	if snap.Explosion != nil {
		drawExplosion(c, snap.Explosion.Position, snap.Tick)
	}
}

// drawOutline draws shape rotated by angle degrees and scaled to radius.
func drawOutline(c *draw.Canvas, center object.Point, shape []vertex, angle, radius float64, filled bool) {
	points := c.BorrowPoints(len(shape))
	for i, v := range shape {
		a := radians(angle + v.angle)
		r := radius * v.scale
		points[i] = draw.Point{
			X: center.X + r*math.Cos(a),
			Y: center.Y + r*math.Sin(a),
		}
	}
	c.DrawPolygon(points, filled)
}

// drawExplosion draws a slowly turning star where the ship died.
func drawExplosion(c *draw.Canvas, at object.Point, tick uint64) {
	const spokes = 8
	const length = 18.0
	base := float64(tick%360) * 2
	for i := 0; i < spokes; i++ {
		a := radians(base + float64(i)*360/spokes)
		l := length
		if i%2 == 1 {
			l *= 0.5
		}
		c.DrawLine(
			draw.Point{X: at.X, Y: at.Y},
			draw.Point{X: at.X + l*math.Cos(a), Y: at.Y + l*math.Sin(a)},
		)
	}
}

// drawParticles writes particle glyphs over the rendered canvas and marks
// their cells so they are erased on the next frame.
func drawParticles(c *draw.Canvas, cw *draw.ChunkWriter, particles []*fx.Particle) {
	width, height := c.TerminalWidth(), c.TerminalHeight()
	for _, p := range particles {
		col, row := c.WorldToTerminal(p.X, p.Y)
		if col < 1 || col > width || row < 1 || row > height {
			continue
		}
		symbol := p.Symbol
		if p.Faded() {
			// Last quarter of life fades from medium to light shade.
			symbol = draw.ShadeLevel(0.25 + 2*float64(p.Life)/float64(p.MaxLife))
		}
		cw.WriteAt(col, row, string(symbol))
		c.MarkTextDirty(col, row, 1)
	}
}
