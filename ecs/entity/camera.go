package entity

import (
	"fmt"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/prefabs"
)

func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		spec = &prefabs.CameraSpec{}
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	target := spec.Target
	if target == "" {
		target = "player"
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: target,
		Zoom:       zoom,
		Smoothness: smooth,
		LookOffset: spec.LookOffset,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
