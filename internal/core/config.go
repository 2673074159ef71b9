package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one Step call.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Levels cleared this session
	GameOver bool // Whether the last level of the pack was cleared
	Paused   bool // Whether the game is paused

	Level      string // Current level name
	LevelIndex int    // Zero-based index in the pack
	LevelCount int
	Moves      int
	Pushes     int
	Phase      string // playing, replanting or cleared
}

// ClearedLevel describes a level the player just finished.
type ClearedLevel struct {
	PackID     string
	LevelID    string
	LevelIndex int
	Moves      int
	Pushes     int
	Duration   time.Duration
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
	// Cleared is set on the tick a level is won.
	Cleared *ClearedLevel
}
