package component

// LevelBounds is the playable area in physics units. KillY is the height
// below which characters respawn.
type LevelBounds struct {
	MinX  float64
	MinY  float64
	MaxX  float64
	MaxY  float64
	KillY float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
