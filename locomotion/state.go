package locomotion

import "github.com/jakecoffman/cp"

// Edge is a boolean with the value it held at the end of the previous step.
type Edge struct {
	Current  bool
	Previous bool
}

// Set stores v and reports whether it differs from the prior value.
func (e *Edge) Set(v bool) bool {
	e.Previous = e.Current
	e.Current = v
	return e.Previous != e.Current
}

// State is the runtime state owned by a Controller.
type State struct {
	Grounded bool
	OnWall   bool

	FacingRight     bool
	FacingDirection float64
	ScaleX          float64

	Crouching   Edge
	Sliding     Edge
	WallJumping bool

	CanDoubleJump bool

	// SmoothVelocity is the SmoothDamp derivative carried across steps.
	SmoothVelocity cp.Vector

	InitialPosition cp.Vector
}

func newState(initial cp.Vector) State {
	return State{
		FacingRight:     true,
		FacingDirection: 1,
		ScaleX:          1,
		CanDoubleJump:   true,
		InitialPosition: initial,
	}
}
