package component

import "github.com/milk9111/wallkick/locomotion"

// Character binds an entity to its locomotion controller. Config seeds the
// controller when it is bound to a physics body.
type Character struct {
	Controller *locomotion.Controller
	Config     locomotion.Config
	// RunSpeed converts the input axis into per-step movement.
	RunSpeed float64
}

var CharacterComponent = NewComponent[Character]()
