package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/rocksplit/internal/config"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEntityAdvance(t *testing.T) {
	e := Entity{Center: Point{X: 1, Y: 2}, Velocity: Velocity{DX: 3, DY: -4}}
	e.Advance()
	if e.Center != (Point{X: 4, Y: -2}) {
		t.Fatalf("center after advance = %+v", e.Center)
	}
}

func TestWrapToScreen(t *testing.T) {
	cases := []struct {
		in, want Point
	}{
		{Point{-0.5, 10}, Point{800, 10}},
		{Point{800.5, 10}, Point{0, 10}},
		{Point{10, -1}, Point{10, 600}},
		{Point{10, 601}, Point{10, 0}},
		{Point{800, 600}, Point{800, 600}},
		{Point{-3, 605}, Point{800, 0}},
	}
	for _, tc := range cases {
		e := Entity{Center: tc.in}
		e.WrapToScreen(800, 600)
		if e.Center != tc.want {
			t.Errorf("wrap %+v = %+v, want %+v", tc.in, e.Center, tc.want)
		}
	}
}

func TestWrapInvariantUnderRandomMotion(t *testing.T) {
	cfg := config.DefaultGame()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		b := NewBullet(cfg, rng.Float64()*cfg.Width, rng.Float64()*cfg.Height, rng.Float64()*360)
		a := NewLargeAsteroid(cfg, rng)
		for tick := 0; tick < 500; tick++ {
			b.Advance()
			b.WrapToScreen(cfg.Width, cfg.Height)
			a.Advance()
			a.WrapToScreen(cfg.Width, cfg.Height)
			for _, c := range []Point{b.Center, a.Center} {
				if c.X < 0 || c.X > cfg.Width || c.Y < 0 || c.Y > cfg.Height {
					t.Fatalf("position %+v escaped the playfield", c)
				}
			}
		}
	}
}

func TestKill(t *testing.T) {
	e := Entity{Alive: true}
	e.Kill()
	if e.Alive || !e.IsDestroyed() || e.HitCounter != 1 {
		t.Fatalf("after Kill: %+v", e)
	}
}

func TestAsteroidSizeProperties(t *testing.T) {
	cfg := config.DefaultGame()
	cases := []struct {
		size   AsteroidSize
		radius float64
		spin   float64
		image  string
	}{
		{AsteroidLarge, 20, 1, "meteorGrey_big2"},
		{AsteroidMedium, 8, -2, "meteorGrey_med2"},
		{AsteroidSmall, 5, 5, "meteorGrey_small2"},
	}
	for _, tc := range cases {
		a := NewAsteroid(cfg, tc.size, 100, 100, Velocity{})
		if a.Radius != tc.radius || a.Spin != tc.spin || tc.size.Image() != tc.image {
			t.Errorf("%v: radius=%v spin=%v image=%q", tc.size, a.Radius, a.Spin, tc.size.Image())
		}
		a.Advance()
		a.Advance()
		if a.Angle != 2*tc.spin {
			t.Errorf("%v: angle after 2 ticks = %v, want %v", tc.size, a.Angle, 2*tc.spin)
		}
	}
}

func TestNewLargeAsteroidBounds(t *testing.T) {
	cfg := config.DefaultGame()
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		a := NewLargeAsteroid(cfg, rng)
		if !a.Alive || a.Size != AsteroidLarge {
			t.Fatalf("unexpected asteroid %+v", a)
		}
		if a.Center.X < 0 || a.Center.X > cfg.Width || a.Center.Y < 0 || a.Center.Y > cfg.Height {
			t.Fatalf("spawned off screen at %+v", a.Center)
		}
		for _, v := range []float64{a.Velocity.DX, a.Velocity.DY} {
			if v < -1 || v >= cfg.LargeSpeed-1 {
				t.Fatalf("drift %v outside [-1, %v)", v, cfg.LargeSpeed-1)
			}
		}
	}
}

func TestFragmentsLarge(t *testing.T) {
	cfg := config.DefaultGame()
	rng := rand.New(rand.NewSource(1))
	parent := NewAsteroid(cfg, AsteroidLarge, 300, 200, Velocity{DX: 0.2, DY: -0.7})

	kids := parent.Fragments(cfg, rng)
	if len(kids) != 3 {
		t.Fatalf("large split into %d, want 3", len(kids))
	}

	var medium, small int
	var dySum float64
	for _, k := range kids {
		if k.Center != parent.Center {
			t.Errorf("child at %+v, want parent center %+v", k.Center, parent.Center)
		}
		if !k.Alive {
			t.Error("child spawned dead")
		}
		switch k.Size {
		case AsteroidMedium:
			medium++
			dySum += k.Velocity.DY
			if !approx(math.Abs(k.Velocity.DY), 3.5) {
				t.Errorf("medium dy = %v, want ±3.5", k.Velocity.DY)
			}
		case AsteroidSmall:
			small++
			if k.Velocity.DX != 3.0 || k.Velocity.DY != parent.Velocity.DY {
				t.Errorf("small velocity = %+v, want {3 %v}", k.Velocity, parent.Velocity.DY)
			}
		}
	}
	if medium != 2 || small != 1 {
		t.Fatalf("got %d medium, %d small", medium, small)
	}
	if !approx(dySum, 0) {
		t.Errorf("medium vertical velocities not opposite: sum %v", dySum)
	}
	if !parent.Alive || parent.Size != AsteroidLarge {
		t.Error("Fragments must not modify the parent")
	}
}

func TestFragmentsMediumAndSmall(t *testing.T) {
	cfg := config.DefaultGame()
	rng := rand.New(rand.NewSource(1))

	medium := NewAsteroid(cfg, AsteroidMedium, 50, 60, Velocity{DX: 1})
	kids := medium.Fragments(cfg, rng)
	if len(kids) != 2 {
		t.Fatalf("medium split into %d, want 2", len(kids))
	}
	want := []Velocity{{3.5, 3.5}, {-3.5, -3.5}}
	for i, k := range kids {
		if k.Size != AsteroidSmall || k.Velocity != want[i] {
			t.Errorf("child %d = %v %+v, want small %+v", i, k.Size, k.Velocity, want[i])
		}
	}

	small := NewAsteroid(cfg, AsteroidSmall, 50, 60, Velocity{})
	if kids := small.Fragments(cfg, rng); len(kids) != 0 {
		t.Fatalf("small split into %d, want 0", len(kids))
	}
}

func TestShipStartsCentered(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.Width = 801
	s := NewShip(cfg)
	if s.Center != (Point{X: 400, Y: 300}) || !s.Alive || s.Radius != 30 {
		t.Fatalf("ship = %+v", s.Entity)
	}
}

func TestShipThrust(t *testing.T) {
	cfg := config.DefaultGame()
	s := NewShip(cfg)

	s.Thrust(cfg, s.Heading()) // nose up
	if !approx(s.Velocity.DX, 0) || !approx(s.Velocity.DY, 2) {
		t.Fatalf("thrust up = %+v", s.Velocity)
	}

	s.Turn(90)
	s.Thrust(cfg, s.Heading()) // nose left
	if !approx(s.Velocity.DX, -2) || !approx(s.Velocity.DY, 0) {
		t.Fatalf("thrust left = %+v", s.Velocity)
	}

	cfg.ShipThrust = 1e6
	s.Thrust(cfg, 0)
	if s.Velocity.DX != cfg.Width {
		t.Fatalf("thrust cap = %v, want %v", s.Velocity.DX, cfg.Width)
	}
}

func TestShipClampsBothAxes(t *testing.T) {
	cfg := config.DefaultGame()
	s := NewShip(cfg)
	s.Center = Point{X: 790, Y: 595}
	s.Velocity = Velocity{DX: 5, DY: 5}
	s.Advance(cfg)
	if s.Center != (Point{X: 780, Y: 580}) {
		t.Fatalf("clamped center = %+v, want {780 580}", s.Center)
	}

	s.Center = Point{X: 10, Y: 5}
	s.Velocity = Velocity{DX: -5, DY: -5}
	s.Advance(cfg)
	if s.Center != (Point{X: 20, Y: 20}) {
		t.Fatalf("clamped center = %+v, want {20 20}", s.Center)
	}
}

func TestBulletFireAndAge(t *testing.T) {
	cfg := config.DefaultGame()
	b := NewBullet(cfg, 100, 100, 90)
	if !approx(b.Velocity.DX, 0) || !approx(b.Velocity.DY, 10) {
		t.Fatalf("velocity = %+v, want {0 10}", b.Velocity)
	}
	if b.Radius != 30 || b.Angle != 90 {
		t.Fatalf("bullet = %+v", b.Entity)
	}

	for i := 1; i < cfg.BulletLifetime; i++ {
		b.Age(cfg.BulletLifetime)
		if !b.Alive {
			t.Fatalf("bullet died after %d ticks", i)
		}
	}
	b.Age(cfg.BulletLifetime)
	if b.Alive {
		t.Fatalf("bullet alive after %d ticks", b.TicksAlive)
	}
}

func TestBulletGrace(t *testing.T) {
	b := &Bullet{TicksAlive: 30}
	if b.PastGrace(30) {
		t.Fatal("30 ticks is still inside the grace period")
	}
	b.TicksAlive = 31
	if !b.PastGrace(30) {
		t.Fatal("31 ticks should be past grace")
	}
}
