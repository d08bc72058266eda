package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/locomotion"
)

// LocomotionSystem runs one fixed step of every character controller:
// contact resolution, movement and the respawn guard. It must run before the
// PhysicsSystem in the fixed scheduler.
type LocomotionSystem struct {
	step float64
}

func NewLocomotionSystem(step float64) *LocomotionSystem {
	return &LocomotionSystem{step: step}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ch *component.Character, input *component.Input) {
		if ch.Controller == nil {
			return
		}

		in := locomotion.Input{
			Move:   input.MoveX * ch.RunSpeed * s.step,
			Crouch: input.Crouch,
			Jump:   input.JumpPressed,
			Slide:  input.Slide,
		}
		notes := locomotion.AdvancePhysicsStep(ch.Controller, in)

		// the latched press is spent whether or not a jump branch matched
		input.JumpPressed = false

		pushNotifications(w, e, notes)
	})
}

// BindControllers creates a controller for every character whose physics
// body exists but has no controller yet. The PhysicsSystem must have synced
// first.
func BindControllers(w *ecs.World, contacts locomotion.Contacts, env locomotion.Env) error {
	if w == nil {
		return nil
	}

	var bindErr error
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, ch *component.Character, body *component.PhysicsBody) {
		if bindErr != nil || ch.Controller != nil || body.Body == nil {
			return
		}
		c, err := locomotion.New(body.Body, contacts, ch.Config, env)
		if err != nil {
			bindErr = err
			return
		}
		c.SetCrouchCollider(body.HeadShape)
		ch.Controller = c
	})
	return bindErr
}

func pushNotifications(w *ecs.World, e ecs.Entity, notes locomotion.Notifications) {
	for _, n := range notes {
		evt := ecs.Event{Type: string(n.Kind), Entity: e}
		if n.Kind == locomotion.NotifyCrouch || n.Kind == locomotion.NotifySlide {
			evt.Data = n.Entering
		}
		w.Events().Push(evt)
	}
}
