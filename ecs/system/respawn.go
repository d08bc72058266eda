package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update performs pending respawn requests. Falling below the kill plane is
// handled inside the controller step; this covers requests from the pause
// menu and scripted runs.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if !ok || ch.Controller == nil {
			_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
			return
		}

		ch.Controller.Respawn()
		pushNotifications(w, e, ch.Controller.Drain())

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos := ch.Controller.Body().Position()
			t.X = pos.X
			t.Y = pos.Y
		}

		_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
	})
}
