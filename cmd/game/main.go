package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/rocksplit/internal/audio"
	"github.com/tomz197/rocksplit/internal/config"
	"github.com/tomz197/rocksplit/internal/draw"
	"github.com/tomz197/rocksplit/internal/loop"
)

func main() {
	// The terminal is the render surface, so errors reach stderr only after
	// run has restored it. Everything in between goes to the optional log file.
	stderr := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rocksplit"})
	if err := run(); err != nil {
		stderr.Error("game stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := newLogger(config.GetEnv("ROCKSPLIT_LOG", ""))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	cfg, err := config.FromEnv(config.DefaultGame())
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sink, closeSink := newSink(config.GetEnv("ROCKSPLIT_AUDIO", "off"), logger)
	defer closeSink()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	draw.EnterAltScreen(os.Stdout)
	defer draw.ExitAltScreen(os.Stdout)

	session, err := loop.NewSession(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Game:     cfg,
		Logger:   logger,
		Sink:     sink,
		Username: os.Getenv("USER"),
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := session.Run(ctx); err != nil {
		logger.Error("game error", "err", err)
		return err
	}
	return nil
}

// newLogger logs to path, or discards when path is empty.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "rocksplit",
	})
	return logger, func() { _ = f.Close() }, nil
}

// newSink picks the audio backend: "beep" for the speaker, "bell" for the
// terminal bell, anything else for silence.
func newSink(mode string, logger *log.Logger) (audio.Sink, func()) {
	switch mode {
	case "beep":
		p, err := audio.NewPlayer(0.8)
		if err != nil {
			logger.Warn("audio unavailable, continuing silent", "err", err)
			return audio.Nop{}, func() {}
		}
		return p, p.Close
	case "bell":
		return audio.NewBell(os.Stdout), func() {}
	default:
		return audio.Nop{}, func() {}
	}
}
