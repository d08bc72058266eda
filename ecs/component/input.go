package component

// Input stores the sampled intent for an entity. JumpPressed is latched by
// the input system and cleared once a fixed step consumes it.
type Input struct {
	MoveX       float64
	Crouch      bool
	Slide       bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
