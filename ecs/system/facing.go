package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/locomotion"
)

// FacingSystem runs the per-frame controller derivations and mirrors the
// facing scale onto the transform.
type FacingSystem struct{}

func NewFacingSystem() *FacingSystem {
	return &FacingSystem{}
}

func (s *FacingSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, ch *component.Character, t *component.Transform) {
		if ch.Controller == nil {
			return
		}
		locomotion.AdvanceVisualStep(ch.Controller)
		t.ScaleX = ch.Controller.State().ScaleX
		if t.ScaleY == 0 {
			t.ScaleY = 1
		}
	})
}
