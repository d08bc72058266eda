package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units (meters, Y up) to screen pixels.
	PixelsPerUnit = 48.0

	// Gravity is the default world gravity along Y. The world is Y-up.
	Gravity = -30.0

	// FixedStep is the simulation step in seconds.
	FixedStep = 1.0 / 50.0
)

// Collision categories shared by physics shapes and overlap queries.
const (
	CategoryGround uint = 1 << iota
	CategoryCharacter
	CategoryHazard

	AllCategories = ^uint(0)
)
