package entity

import (
	"fmt"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/levels"
)

// LoadLevelToWorld creates a static solid entity for every level box and a
// single LevelBounds entity.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("level: nil level")
	}

	minX, minY, maxX, maxY := lvl.Bounds()
	boundsEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX:  minX,
		MinY:  minY,
		MaxX:  maxX,
		MaxY:  maxY,
		KillY: lvl.KillY,
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	for i, s := range lvl.Solids {
		e := ecs.CreateEntity(w)
		cx, cy := s.Center()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: cx, Y: cy, ScaleX: 1, ScaleY: 1}); err != nil {
			return fmt.Errorf("level: solid %d transform: %w", i, err)
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:    s.W,
			Height:   s.H,
			Friction: s.Friction,
			Static:   true,
		}); err != nil {
			return fmt.Errorf("level: solid %d body: %w", i, err)
		}
		if err := ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{}); err != nil {
			return fmt.Errorf("level: solid %d tag: %w", i, err)
		}
	}

	return nil
}
