// Package loop drives a world at a fixed tick rate and renders it to a terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocksplit/internal/audio"
	"github.com/tomz197/rocksplit/internal/config"
	"github.com/tomz197/rocksplit/internal/draw"
	"github.com/tomz197/rocksplit/internal/fx"
	"github.com/tomz197/rocksplit/internal/input"
	loopconfig "github.com/tomz197/rocksplit/internal/loop/config"
	"github.com/tomz197/rocksplit/internal/world"
)

// Options configures a session.
type Options struct {
	Game         config.Game
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Sink         audio.Sink
	Username     string
}

// Session owns one world and plays it on one terminal.
type Session struct {
	world     *world.World
	snap      *world.Snapshot
	particles *fx.System

	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	hud          *hud
	termSizeFunc draw.TermSizeFunc

	inputStream *input.Stream
	input       input.Input
	sink        audio.Sink
	logger      *log.Logger
	username    string

	state         GameState
	prevState     GameState
	running       bool
	lastInput     time.Time
	isInactive    bool
	wasInactive   bool
	shutdownUntil time.Time
	games         int
}

// NewSession validates opts.Game and creates the first world.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	wld, err := world.New(opts.Game, nil)
	if err != nil {
		return nil, err
	}

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sink := opts.Sink
	if sink == nil {
		sink = audio.Nop{}
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, loopconfig.MaxTermWidth, loopconfig.MaxTermHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, opts.Game.Width, opts.Game.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Session{
		world:        wld,
		snap:         wld.Snapshot(),
		particles:    fx.NewSystem(rand.New(rand.NewSource(time.Now().UnixNano()))),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		hud:          newHUD(w),
		termSizeFunc: termSizeFunc,
		inputStream:  input.StartStream(r),
		sink:         sink,
		logger:       logger,
		username:     opts.Username,
		state:        GameStatePlaying,
		prevState:    GameStatePlaying,
		running:      true,
		lastInput:    time.Now(),
		games:        1,
	}, nil
}

// State returns the current game phase.
func (s *Session) State() GameState {
	return s.state
}

// Run plays until the player quits, the input ends, the player idles out,
// or the shutdown notice expires after ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	s.logger.Info("session started", "user", s.username)

	ticker := time.NewTicker(loopconfig.TickTime)
	defer ticker.Stop()

	done := ctx.Done()
	for s.running {
		select {
		case <-done:
			s.beginShutdown(time.Now())
			done = nil
		case <-ticker.C:
		}

		if err := s.frame(time.Now()); err != nil {
			return err
		}
	}

	s.logger.Info("session ended", "user", s.username, "games", s.games, "tick", s.snap.Tick)
	draw.ClearScreen(s.writer)
	return nil
}

// frame runs one Input -> Update -> Draw cycle.
func (s *Session) frame(now time.Time) error {
	s.processInput(now)
	s.updateScreen()
	if err := s.update(now); err != nil {
		return err
	}
	return s.drawFrame(now)
}

// processInput reads pending input and tracks inactivity.
func (s *Session) processInput(now time.Time) {
	s.input = input.ReadInput(s.inputStream)

	if s.inputStream.Closed() {
		s.running = false
		return
	}

	idle := now.Sub(s.lastInput).Seconds()
	switch {
	case s.input.Any():
		s.lastInput = now
		s.isInactive = false
	case idle > loopconfig.InactivityDisconnectUser:
		s.logger.Info("disconnecting idle session", "user", s.username)
		s.running = false
	case idle > loopconfig.InactivityWarnUser:
		s.isInactive = true
	}

	if s.input.Quit {
		s.running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, loopconfig.MaxTermWidth, loopconfig.MaxTermHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// update advances the game by one tick.
func (s *Session) update(now time.Time) error {
	switch s.state {
	case GameStatePlaying:
		s.step(commandsFor(s.input))
		if s.snap.ShipDestroyed {
			s.state = GameStateOver
			s.logger.Info("game over", "user", s.username, "tick", s.snap.Tick, "asteroids", s.snap.Asteroids)
		}
	case GameStateOver:
		s.step(0)
		if s.input.Enter {
			return s.restart()
		}
	case GameStateShutdown:
		s.step(0)
		if !now.Before(s.shutdownUntil) {
			s.running = false
		}
	}
	return nil
}

// step ticks the world and forwards its events to audio and particles.
func (s *Session) step(cmds world.Commands) {
	s.snap = s.world.Tick(cmds)
	s.particles.Update()

	for _, ev := range s.snap.Events {
		s.sink.Play(ev)
		switch ev.Type {
		case world.AsteroidHit:
			s.particles.AsteroidHit(ev.Position.X, ev.Position.Y, int(ev.Size))
		case world.ShipDestroyed:
			s.particles.ShipDestroyed(ev.Position.X, ev.Position.Y)
		}
	}
}

// restart replaces the world with a fresh one.
func (s *Session) restart() error {
	wld, err := world.New(s.world.Config(), nil)
	if err != nil {
		return err
	}
	s.world = wld
	s.snap = wld.Snapshot()
	s.particles.Reset()
	s.inputStream.Reset()
	s.state = GameStatePlaying
	s.games++
	s.logger.Debug("game restarted", "user", s.username, "games", s.games)
	return nil
}

// beginShutdown shows the shutdown notice and schedules the disconnect.
func (s *Session) beginShutdown(now time.Time) {
	if s.state == GameStateShutdown {
		return
	}
	s.state = GameStateShutdown
	s.shutdownUntil = now.Add(time.Duration(loopconfig.ShutdownDisplaySeconds * float64(time.Second)))
}

// commandsFor maps held keys to world commands.
func commandsFor(in input.Input) world.Commands {
	var cmds world.Commands
	if in.Left {
		cmds = cmds.With(world.TurnLeft)
	}
	if in.Right {
		cmds = cmds.With(world.TurnRight)
	}
	if in.Up {
		cmds = cmds.With(world.ThrustForward)
	}
	if in.Down {
		cmds = cmds.With(world.ThrustReverse)
	}
	if in.Fire {
		cmds = cmds.With(world.Fire)
	}
	return cmds
}
