package core

// RuntimeConfig is passed to a game when it starts or restarts.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig sized for a standard terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the status a game reports to the shell.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score seen for this save slot
	MaxTile  int  // Largest tile on the board
	GameOver bool // No move is possible
	Won      bool // The mode's final goal was reached
	Paused   bool // Whether the game is paused
	Run      int  // Increments every time a new game starts
}

// Finished reports whether the run is over and its score can be recorded.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
