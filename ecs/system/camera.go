package system

import (
	"github.com/milk9111/wallkick/common"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera transform toward its target, leading in the
// target's facing direction.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	lead := camComp.LookOffset * common.Sign(target.ScaleX)
	t := camComp.Smoothness
	if t <= 0 || t > 1 {
		t = 1
	}
	camTransform.X = common.Lerp(camTransform.X, target.X+lead, t)
	camTransform.Y = common.Lerp(camTransform.Y, target.Y, t)

	if bounds, ok := levelBounds(w); ok {
		halfW, halfH := viewHalfExtents(camComp.Zoom)
		camTransform.X = clampView(camTransform.X, bounds.MinX, bounds.MaxX, halfW)
		camTransform.Y = clampView(camTransform.Y, bounds.MinY, bounds.MaxY, halfH)
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

func levelBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}

// viewHalfExtents is half the visible area in world units.
func viewHalfExtents(zoom float64) (float64, float64) {
	if zoom <= 0 {
		zoom = 1
	}
	scale := common.PixelsPerUnit * zoom
	return float64(common.BaseWidth) / scale / 2, float64(common.BaseHeight) / scale / 2
}

// clampView keeps a view of half-size half inside [lo, hi], centering it
// when the range is smaller than the view.
func clampView(v, lo, hi, half float64) float64 {
	if hi <= lo {
		return v
	}
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return common.Clamp(v, lo+half, hi-half)
}
