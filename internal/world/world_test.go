package world

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/rocksplit/internal/config"
	"github.com/tomz197/rocksplit/internal/object"
)

// newTestWorld builds a deterministic world with no asteroids.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	cfg := config.DefaultGame()
	cfg.InitialAsteroids = 0
	w, err := New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

// addAsteroid places a motionless asteroid of the given size.
func addAsteroid(w *World, size object.AsteroidSize, x, y float64) *object.Asteroid {
	a := object.NewAsteroid(w.cfg, size, x, y, object.Velocity{})
	w.asteroids = append(w.asteroids, a)
	return a
}

func countSizes(w *World) map[object.AsteroidSize]int {
	counts := map[object.AsteroidSize]int{}
	for _, a := range w.asteroids {
		if a.Alive {
			counts[a.Size]++
		}
	}
	return counts
}

func TestNewSpawnsInitialField(t *testing.T) {
	w, err := New(config.DefaultGame(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := countSizes(w)[object.AsteroidLarge]; got != 5 {
		t.Fatalf("initial large asteroids = %d, want 5", got)
	}
	if len(w.bullets) != 0 || !w.ship.Alive {
		t.Fatal("expected no bullets and a live ship")
	}
	if w.ship.Center != (object.Point{X: 400, Y: 300}) {
		t.Fatalf("ship at %+v, want center", w.ship.Center)
	}
	if w.Snapshot() == nil || w.Snapshot().Asteroids != 5 {
		t.Fatal("expected an initial snapshot with 5 asteroids")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.BulletSpeed = math.Inf(1)
	if _, err := New(cfg, nil); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestTickAdvancesCounter(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 5; i++ {
		w.Tick(0)
	}
	if w.TickCount() != 5 || w.Snapshot().Tick != 5 {
		t.Fatalf("tick count = %d, snapshot tick = %d", w.TickCount(), w.Snapshot().Tick)
	}
}

func TestCommandsSteerShip(t *testing.T) {
	w := newTestWorld(t)

	w.Tick(Commands(0).With(TurnLeft))
	if w.ship.Angle != 3 {
		t.Fatalf("angle after TurnLeft = %v, want 3", w.ship.Angle)
	}
	w.Tick(Commands(0).With(TurnRight).With(TurnRight))
	if w.ship.Angle != 0 {
		t.Fatalf("TurnRight held twice in a set applies once, angle = %v", w.ship.Angle)
	}

	w.Tick(Commands(0).With(ThrustForward))
	if math.Abs(w.ship.Velocity.DY-2) > 1e-9 {
		t.Fatalf("forward thrust velocity = %+v", w.ship.Velocity)
	}
	if w.ship.Center.Y <= 300 {
		t.Fatalf("ship should have moved up, at %+v", w.ship.Center)
	}

	w.Tick(Commands(0).With(ThrustReverse))
	if math.Abs(w.ship.Velocity.DY+2) > 1e-9 {
		t.Fatalf("reverse thrust velocity = %+v", w.ship.Velocity)
	}
}

func TestFireCreatesBulletAndEvent(t *testing.T) {
	w := newTestWorld(t)
	snap := w.Tick(Commands(0).With(Fire))

	if len(w.bullets) != 1 || snap.Bullets != 1 {
		t.Fatalf("bullets = %d, snapshot bullets = %d", len(w.bullets), snap.Bullets)
	}
	b := w.bullets[0]
	if b.Angle != 90 || b.TicksAlive != 1 {
		t.Fatalf("bullet angle=%v ticks=%d", b.Angle, b.TicksAlive)
	}
	if math.Abs(b.Center.Y-310) > 1e-9 {
		t.Fatalf("bullet should have advanced once to y=310, got %+v", b.Center)
	}
	if len(snap.Events) != 1 || snap.Events[0].Type != ShipFired {
		t.Fatalf("events = %+v, want one ShipFired", snap.Events)
	}
	if next := w.Tick(0); len(next.Events) != 0 {
		t.Fatalf("events leaked into the next tick: %+v", next.Events)
	}
}

func TestBulletLifetime(t *testing.T) {
	w := newTestWorld(t)
	w.Tick(Commands(0).With(Fire))
	fired := w.TickCount()
	b := w.bullets[0]
	if b.TicksAlive != 1 {
		t.Fatalf("TicksAlive = %d on the firing tick, want 1", b.TicksAlive)
	}

	// Keep the bullet away from the ship so the grace check never matters.
	w.ship.Center = object.Point{X: 100, Y: 100}
	b.Center = object.Point{X: 700, Y: 500}
	b.Velocity = object.Velocity{}

	for i := 2; i < 60; i++ {
		w.Tick(0)
		if !b.Alive {
			t.Fatalf("bullet died early on tick %d", i)
		}
	}
	w.Tick(0) // 60th tick of aging
	if b.Alive {
		t.Fatalf("bullet still alive with TicksAlive=%d", b.TicksAlive)
	}
	if got, want := w.TickCount()-fired, uint64(w.cfg.BulletLifetime-1); got != want {
		t.Fatalf("bullet died %d ticks after firing, want %d", got, want)
	}
	if snap := w.Snapshot(); snap.Bullets != 0 {
		t.Fatalf("dead bullet exposed in snapshot")
	}
	w.Tick(0)
	if len(w.bullets) != 0 {
		t.Fatalf("expired bullet not purged, %d left", len(w.bullets))
	}
}

func TestFragmentationCounts(t *testing.T) {
	cases := []struct {
		size   object.AsteroidSize
		medium int
		small  int
	}{
		{object.AsteroidLarge, 2, 1},
		{object.AsteroidMedium, 0, 2},
		{object.AsteroidSmall, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.size.String(), func(t *testing.T) {
			w := newTestWorld(t)
			target := addAsteroid(w, tc.size, 200, 150)
			w.bullets = append(w.bullets, object.NewBullet(w.cfg, 200, 150, 0))

			snap := w.Tick(0)

			if target.Alive {
				t.Fatal("hit asteroid still alive")
			}
			counts := countSizes(w)
			if counts[object.AsteroidMedium] != tc.medium || counts[object.AsteroidSmall] != tc.small || counts[object.AsteroidLarge] != 0 {
				t.Fatalf("fragments = %v, want %d medium %d small", counts, tc.medium, tc.small)
			}
			if len(w.asteroids) != tc.medium+tc.small {
				t.Fatalf("collection holds %d asteroids", len(w.asteroids))
			}
			hits := 0
			for _, e := range snap.Events {
				if e.Type == AsteroidHit {
					hits++
					if e.Size != tc.size {
						t.Errorf("hit event size = %v, want %v", e.Size, tc.size)
					}
				}
			}
			if hits != 1 {
				t.Fatalf("AsteroidHit events = %d, want 1", hits)
			}
		})
	}
}

func TestBulletScoresOneAsteroidPerTick(t *testing.T) {
	w := newTestWorld(t)
	first := addAsteroid(w, object.AsteroidSmall, 200, 150)
	second := addAsteroid(w, object.AsteroidSmall, 205, 150)
	w.bullets = append(w.bullets, object.NewBullet(w.cfg, 202, 150, 0))

	w.Tick(0)

	if first.Alive {
		t.Fatal("first asteroid in collection order should be hit")
	}
	if !second.Alive {
		t.Fatal("bullet hit a second asteroid in the same tick")
	}
	if len(w.bullets) != 0 {
		t.Fatal("bullet should be dead and purged")
	}
}

func TestAsteroidHitOnlyOncePerTick(t *testing.T) {
	w := newTestWorld(t)
	addAsteroid(w, object.AsteroidLarge, 200, 150)
	w.bullets = append(w.bullets,
		object.NewBullet(w.cfg, 200, 150, 0),
		object.NewBullet(w.cfg, 201, 150, 0),
	)

	snap := w.Tick(0)

	counts := countSizes(w)
	if counts[object.AsteroidMedium] != 2 || counts[object.AsteroidSmall] != 1 {
		t.Fatalf("double-processed asteroid: %v", counts)
	}
	if snap.Bullets != 1 {
		t.Fatalf("second bullet should survive, live bullets = %d", snap.Bullets)
	}
}

func TestShipDiesOnAsteroidContact(t *testing.T) {
	w := newTestWorld(t)
	addAsteroid(w, object.AsteroidSmall, 420, 320)

	snap := w.Tick(Commands(0).With(TurnLeft))
	if w.ship.Alive {
		t.Fatal("ship survived touching an asteroid")
	}
	if !snap.ShipDestroyed || snap.Explosion == nil {
		t.Fatal("snapshot should expose the destroyed state and explosion")
	}
	if snap.Explosion.Image != ExplosionImage || snap.Banner != GameOverImage {
		t.Fatalf("explosion image = %q, banner = %q", snap.Explosion.Image, snap.Banner)
	}
	if snap.Explosion.Position != w.ship.Center {
		t.Fatalf("explosion at %v, ship died at %v", snap.Explosion.Position, w.ship.Center)
	}
	for _, e := range snap.Entities {
		if e.Kind == object.KindShip {
			t.Fatal("destroyed ship still rendered as a ship")
		}
	}
	destroyed := 0
	for _, e := range snap.Events {
		if e.Type == ShipDestroyed {
			destroyed++
		}
	}
	if destroyed != 1 {
		t.Fatalf("ShipDestroyed events = %d, want 1", destroyed)
	}

	// Death is permanent and further commands are ignored.
	angle, center := w.ship.Angle, w.ship.Center
	for i := 0; i < 10; i++ {
		w.Tick(Commands(0).With(Fire).With(TurnRight).With(ThrustForward))
	}
	if w.ship.Alive {
		t.Fatal("ship came back to life")
	}
	if w.ship.Angle != angle || w.ship.Center != center {
		t.Fatal("destroyed ship responded to commands")
	}
	if len(w.bullets) != 0 {
		t.Fatal("destroyed ship fired")
	}
	if !w.GameOver() {
		t.Fatal("GameOver() = false")
	}
}

func TestShipDeathEmittedOnce(t *testing.T) {
	w := newTestWorld(t)
	addAsteroid(w, object.AsteroidSmall, 400, 300)
	addAsteroid(w, object.AsteroidMedium, 410, 300)

	snap := w.Tick(0)
	n := 0
	for _, e := range snap.Events {
		if e.Type == ShipDestroyed {
			n++
		}
	}
	if n != 1 || w.ship.HitCounter != 1 {
		t.Fatalf("ship destroyed %d times, hit counter %d", n, w.ship.HitCounter)
	}
}

func TestBulletGracePeriod(t *testing.T) {
	w := newTestWorld(t)
	b := object.NewBullet(w.cfg, w.ship.Center.X, w.ship.Center.Y, 0)
	b.Velocity = object.Velocity{}
	w.bullets = append(w.bullets, b)

	// Overlapping the whole time: harmless while TicksAlive <= 30.
	for i := 0; i < 31; i++ {
		w.Tick(0)
		if !w.ship.Alive {
			t.Fatalf("ship killed by own bullet at TicksAlive=%d", b.TicksAlive)
		}
	}
	if b.TicksAlive != 31 {
		t.Fatalf("TicksAlive = %d, want 31", b.TicksAlive)
	}

	w.Tick(0)
	if w.ship.Alive {
		t.Fatal("bullet past grace should destroy the ship")
	}
	if b.Alive {
		t.Fatal("bullet should die with the ship")
	}
}

func TestShipClampInvariant(t *testing.T) {
	w := newTestWorld(t)
	cfg := w.cfg
	rng := rand.New(rand.NewSource(9))

	all := []Command{TurnLeft, TurnRight, ThrustForward, ThrustReverse}
	for i := 0; i < 3000; i++ {
		var cmds Commands
		for _, c := range all {
			if rng.Intn(3) == 0 {
				cmds = cmds.With(c)
			}
		}
		w.Tick(cmds)
		c := w.ship.Center
		if c.X < cfg.ShipInset || c.X > cfg.Width-cfg.ShipInset || c.Y < cfg.ShipInset || c.Y > cfg.Height-cfg.ShipInset {
			t.Fatalf("tick %d: ship at %+v outside the inset box", i, c)
		}
	}
}

func TestWrapInvariantInWorld(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.InitialAsteroids = 12
	w, err := New(cfg, rand.New(rand.NewSource(21)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Take the ship out of play so the run is not cut short.
	w.ship.Alive = false

	for i := 0; i < 600; i++ {
		snap := w.Tick(0)
		for _, e := range snap.Entities {
			p := e.Position
			if p.X < 0 || p.X > cfg.Width || p.Y < 0 || p.Y > cfg.Height {
				t.Fatalf("tick %d: %v at %+v escaped", i, e.Kind, p)
			}
		}
	}
}

func TestEndToEndSplitScenario(t *testing.T) {
	w, err := New(config.DefaultGame(), rand.New(rand.NewSource(77)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Pin the field: four bystanders in the corners, one target just above
	// the ship where only the bullet will reach it.
	corners := []object.Point{{X: 80, Y: 80}, {X: 720, Y: 80}, {X: 80, Y: 520}, {X: 720, Y: 520}}
	for i, a := range w.asteroids[:4] {
		a.Center = corners[i]
		a.Velocity = object.Velocity{}
	}
	target := w.asteroids[4]
	target.Center = object.Point{X: w.ship.Center.X, Y: w.ship.Center.Y + 55}
	target.Velocity = object.Velocity{}

	for tick := 1; tick < 10; tick++ {
		w.Tick(0)
	}
	w.Tick(Commands(0).With(Fire)) // tick 10
	if !target.Alive {
		t.Fatal("target hit before the bullet reached it")
	}

	snap := w.Tick(0) // tick 11
	if snap.Tick != 11 {
		t.Fatalf("snapshot tick = %d", snap.Tick)
	}
	counts := countSizes(w)
	if counts[object.AsteroidLarge] != 4 || counts[object.AsteroidMedium] != 2 || counts[object.AsteroidSmall] != 1 {
		t.Fatalf("asteroids = %v, want 4 large, 2 medium, 1 small", counts)
	}
	if snap.Asteroids != 7 || snap.Bullets != 0 {
		t.Fatalf("snapshot asteroids=%d bullets=%d, want 7 and 0", snap.Asteroids, snap.Bullets)
	}
	if !w.ship.Alive {
		t.Fatal("ship should survive the scenario")
	}
}

func TestReplenishDisabledByDefault(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 10; i++ {
		w.Tick(0)
	}
	if len(w.asteroids) != 0 {
		t.Fatalf("asteroids appeared with replenishment disabled: %d", len(w.asteroids))
	}
}

func TestReplenishSpawnsWave(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.InitialAsteroids = 0
	cfg.ReplenishThreshold = 3
	cfg.ReplenishWave = 7
	w, err := New(cfg, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := w.Tick(0)
	if snap.Asteroids != 7 {
		t.Fatalf("after depletion got %d asteroids, want a wave of 7", snap.Asteroids)
	}
	snap = w.Tick(0)
	if snap.Asteroids != 7 {
		t.Fatalf("wave spawned again above threshold: %d", snap.Asteroids)
	}
}

func TestReplenishSparesShipAtEdge(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := config.DefaultGame()
		cfg.InitialAsteroids = 0
		cfg.ReplenishThreshold = 1
		cfg.ReplenishWave = 12
		w, err := New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		w.ship.Center = object.Point{X: cfg.ShipInset, Y: cfg.ShipInset}
		w.ship.Velocity = object.Velocity{}

		snap := w.Tick(0)
		if snap.Asteroids != cfg.ReplenishWave {
			t.Fatalf("seed %d: wave of %d, want %d", seed, snap.Asteroids, cfg.ReplenishWave)
		}
		for _, a := range w.asteroids {
			if tooClose(&a.Entity, &w.ship.Entity) {
				t.Fatalf("seed %d: asteroid spawned on the ship at %v", seed, a.Center)
			}
		}
		if snap = w.Tick(0); snap.ShipDestroyed {
			t.Fatalf("seed %d: ship destroyed by a fresh wave", seed)
		}
	}
}

func TestCompactClearsTail(t *testing.T) {
	dead := &object.Bullet{}
	live := &object.Bullet{Entity: object.Entity{Alive: true}}
	items := []*object.Bullet{dead, live, dead}

	kept := compact(items)
	if len(kept) != 1 || kept[0] != live {
		t.Fatalf("kept = %v", kept)
	}
	if items[1] != nil || items[2] != nil {
		t.Fatal("tail not cleared")
	}
}

func TestCommandsSet(t *testing.T) {
	cs := Commands(0).With(Fire).With(TurnLeft)
	if !cs.Has(Fire) || !cs.Has(TurnLeft) || cs.Has(TurnRight) || cs.Empty() {
		t.Fatalf("unexpected set %08b", cs)
	}
	if !Commands(0).Empty() {
		t.Fatal("zero set should be empty")
	}
}
