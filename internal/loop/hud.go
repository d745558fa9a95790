package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	loopconfig "github.com/tomz197/rocksplit/internal/loop/config"
	"github.com/tomz197/rocksplit/internal/world"
)

// hud holds the text styles for one terminal. SSH sessions are not detected
// as terminals, so the color profile is fixed up front.
type hud struct {
	status  lipgloss.Style
	title   lipgloss.Style
	warning lipgloss.Style
	prompt  lipgloss.Style
	hint    lipgloss.Style
}

func newHUD(w io.Writer) *hud {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return &hud{
		status:  r.NewStyle().Foreground(lipgloss.Color("250")),
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		prompt:  r.NewStyle().Foreground(lipgloss.Color("86")),
		hint:    r.NewStyle().Faint(true),
	}
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// banners maps snapshot banner tags to their ASCII art.
var banners = map[string][]string{
	world.GameOverImage: gameOverArt,
}

// drawFrame draws the current frame.
func (s *Session) drawFrame(now time.Time) error {
	// On state or inactivity transitions, do a full terminal clear so
	// overlays from the previous state don't persist on screen.
	if s.state != s.prevState || s.isInactive != s.wasInactive {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevState = s.state
		s.wasInactive = s.isInactive
	}

	s.canvas.Clear()
	drawWorld(s.canvas, s.snap)

	if err := s.canvas.Render(s.chunkWriter); err != nil {
		return err
	}
	s.canvas.RenderBorder(s.chunkWriter)
	drawParticles(s.canvas, s.chunkWriter, s.particles.Particles())

	s.drawUI(now)

	return s.chunkWriter.Flush()
}

// drawUI draws the overlay for the current state.
func (s *Session) drawUI(now time.Time) {
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2

	s.drawStatus()

	switch {
	case s.state == GameStateShutdown:
		s.drawShutdownScreen(now, centerX, centerY)
	case s.isInactive:
		s.drawInactivityScreen(now, centerX, centerY)
	case s.state == GameStateOver:
		s.drawGameOverScreen(now, centerX, centerY)
	}
}

// writeText writes styled text at (col, row) and marks the cells it covers.
func (s *Session) writeText(col, row int, style lipgloss.Style, text string) {
	s.chunkWriter.WriteAt(col, row, style.Render(text))
	s.canvas.MarkTextDirty(col, row, lipgloss.Width(text))
}

// writeCentered writes text centered on centerX.
func (s *Session) writeCentered(centerX, row int, style lipgloss.Style, text string) {
	s.writeText(centerX-lipgloss.Width(text)/2, row, style, text)
}

// drawStatus draws the live counters on the first row.
// Fields are fixed width so shrinking values leave no residue.
func (s *Session) drawStatus() {
	text := fmt.Sprintf("Asteroids: %-3d Bullets: %-3d Tick: %-8d", s.snap.Asteroids, s.snap.Bullets, s.snap.Tick)
	s.writeText(2, 1, s.hud.status, text)

	if s.games > 1 {
		games := fmt.Sprintf("Game %-3d", s.games)
		s.writeText(s.canvas.TerminalWidth()-lipgloss.Width(games)-1, 1, s.hud.hint, games)
	}
}

// drawGameOverScreen draws the restart prompt over the drifting field.
func (s *Session) drawGameOverScreen(now time.Time, centerX, centerY int) {
	top := centerY - 4
	art := banners[s.snap.Banner]
	for i, line := range art {
		s.writeCentered(centerX, top+i, s.hud.title, line)
	}

	left := fmt.Sprintf("Asteroids left: %d", s.snap.Asteroids)
	s.writeCentered(centerX, top+len(art)+1, s.hud.status, left)

	if now.UnixMilli()/600%2 == 0 {
		s.writeCentered(centerX, top+len(art)+3, s.hud.prompt, ">>  ENTER to restart, Q to quit  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(now time.Time, centerX, centerY int) {
	s.writeCentered(centerX, centerY-2, s.hud.warning, "INACTIVITY WARNING")

	remaining := int(loopconfig.InactivityDisconnectUser - now.Sub(s.lastInput).Seconds())
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", max(remaining, 0))
	s.writeCentered(centerX, centerY, s.hud.status, msg)

	s.writeCentered(centerX, centerY+2, s.hud.hint, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(now time.Time, centerX, centerY int) {
	s.writeCentered(centerX, centerY-3, s.hud.warning, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY-1, s.hud.status, "The server is restarting for maintenance.")
	s.writeCentered(centerX, centerY, s.hud.status, "Please reconnect in a moment.")

	remaining := int(s.shutdownUntil.Sub(now).Seconds()) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", max(remaining, 0))
	s.writeCentered(centerX, centerY+2, s.hud.status, countdown)

	s.writeCentered(centerX, centerY+4, s.hud.hint, "Press Q to disconnect now")
}
