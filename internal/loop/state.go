package loop

// GameState represents the current phase of a session.
type GameState int

const (
	GameStatePlaying  GameState = iota // Ship alive, commands applied
	GameStateOver                      // Ship destroyed, field keeps drifting
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "game_over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}
