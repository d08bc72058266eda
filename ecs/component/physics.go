package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Dynamic characters are split into a lower Shape and an upper HeadShape so
// the head can be switched off while crouching.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	HeadShape *cp.Shape

	Width      float64
	Height     float64
	HeadHeight float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool

	// Category is the collision category bit of every shape on the body.
	Category uint
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
