package core

// RuntimeConfig contains settings passed from the platform to a game session.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second driving the engine tick
}
