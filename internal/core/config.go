package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Fixed physics ticks per second (default 60)
	Level    int // Starting level number
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Level:    1,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level         int    // Current level number
	Ticks         int    // Fixed ticks simulated on this level
	Deaths        int    // Crashes on this level
	Alive         bool   // Whether the ship is flying
	Message       string // Pending narrative text, empty when none
	Paused        bool   // Paused by the player or waiting on a message
	LevelComplete bool   // The exit trigger of the current level fired
	Finished      bool   // No further level exists
}

// StepResult is returned after each rendered frame.
type StepResult struct {
	State GameState
	Ticks int // Fixed ticks actually run during this frame
}
