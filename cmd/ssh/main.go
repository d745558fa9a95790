package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/rocksplit/internal/audio"
	"github.com/tomz197/rocksplit/internal/config"
	"github.com/tomz197/rocksplit/internal/draw"
	"github.com/tomz197/rocksplit/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	sessionDrainTimeout = 15 * time.Second
	serverCloseTimeout  = 5 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rocksplit-ssh",
	})
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	cfg, err := config.FromEnv(config.DefaultGame())
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games := &gameHandler{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		bell:   config.GetEnvBool("SSH_BELL", true),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down, notifying connected players", "sessions", games.active())
		games.wait(sessionDrainTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCloseTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	ctx    context.Context // Cancelled on shutdown; sessions show a notice
	cfg    config.Game
	logger *log.Logger
	bell   bool // Ring the client's terminal bell on hits

	mu       sync.Mutex
	sessions int
	wg       sync.WaitGroup
}

func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.track(1)
		defer h.track(-1)

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		var sink audio.Sink = audio.Nop{}
		if h.bell {
			sink = audio.NewBell(sess)
		}

		session, err := loop.NewSession(bufio.NewReader(sess), sess, loop.Options{
			Game:         h.cfg,
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Sink:         sink,
			Username:     sess.User(),
		})
		if err != nil {
			logger.Error("failed to create session", "err", err)
			return
		}
		if err := session.Run(h.ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		next(sess)
	}
}

func (h *gameHandler) track(delta int) {
	h.mu.Lock()
	h.sessions += delta
	h.mu.Unlock()
	h.wg.Add(delta)
}

func (h *gameHandler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

// wait blocks until every session has ended or timeout passes.
func (h *gameHandler) wait(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		h.logger.Warn("sessions still running after drain timeout", "sessions", h.active())
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
