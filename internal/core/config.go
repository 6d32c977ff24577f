package core

// RuntimeConfig contains configuration passed to a session at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a session.
type GameState struct {
	Score    int  // Current snake size
	GameOver bool // Whether the run has ended (lost, won or faulted)
	Paused   bool // Whether the run is paused
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // Whether the snake advanced this tick
}
