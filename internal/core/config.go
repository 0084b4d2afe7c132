package core

// RuntimeConfig is what a front end hands a game when it starts or restarts.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second; timed levels count down by 1/TickRate per step
	Seed     int64 // Board and budget RNG seed; the same seed deals the same boards
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second. A zero
// seed is replaced with the current time by the front end.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the part of a game's state the front ends act on.
type GameState struct {
	Score    int  // Score of the current run
	Level    int  // Level being played, 0 for games without levels
	GameOver bool // Run has ended; the score can be stored
	Paused   bool // Paused, between levels or the screen is too small
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
