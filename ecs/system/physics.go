package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/common"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

type PhysicsSystem struct {
	space   *cp.Space
	step    float64
	gravity cp.Vector

	entities map[ecs.Entity]*bodyInfo
	// shapes is every registered shape in creation order, for overlap queries.
	shapes []*cp.Shape
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(gravity cp.Vector, step float64) *PhysicsSystem {
	if step <= 0 {
		step = common.FixedStep
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(gravity)
	return &PhysicsSystem{
		space:    space,
		step:     step,
		gravity:  gravity,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Gravity() cp.Vector {
	if ps == nil {
		return cp.Vector{}
	}
	return ps.gravity
}

func (ps *PhysicsSystem) Step() float64 {
	return ps.step
}

// Update integrates one fixed step. Controllers must have written their
// velocity changes before it runs.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)
	ps.space.Step(ps.step)
	ps.syncTransforms(w)
}

// Sync creates bodies for new PhysicsBody entities and drops bodies whose
// entity is gone.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(*transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		ps.shapes = append(ps.shapes, info.shapes...)
	}
}

// Overlap returns every registered shape within radius of point that passes
// filter, in creation order.
func (ps *PhysicsSystem) Overlap(point cp.Vector, radius float64, filter cp.ShapeFilter) []*cp.Shape {
	if ps == nil {
		return nil
	}
	var out []*cp.Shape
	for _, shape := range ps.shapes {
		if rejects(filter, shape.Filter) {
			continue
		}
		if shape.PointQuery(point).Distance <= radius {
			out = append(out, shape)
		}
	}
	return out
}

// rejects mirrors Chipmunk's filter rule: same non-zero group, or either
// side's categories missing from the other's mask.
func rejects(query, shape cp.ShapeFilter) bool {
	if query.Group != 0 && query.Group == shape.Group {
		return true
	}
	return query.Categories&shape.Mask == 0 || shape.Categories&query.Mask == 0
}

// createBodyInfo fills in bodyComp.Body and its shapes. Positions are body
// centers.
func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 1
		height = 1
	}

	if bodyComp.Static {
		category := bodyComp.Category
		if category == 0 {
			category = common.CategoryGround
		}
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.ShapeFilter{Categories: category, Mask: common.AllCategories})
		ps.space.AddShape(shape)

		bodyComp.Body = ps.space.StaticBody
		bodyComp.Shape = shape
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	category := bodyComp.Category
	if category == 0 {
		category = common.CategoryCharacter
	}
	filter := cp.ShapeFilter{Categories: category, Mask: common.AllCategories}

	// rotation stays locked, the controller only drives linear velocity
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	head := bodyComp.HeadHeight
	if head < 0 || head >= height {
		head = 0
	}
	halfW := width / 2
	bottom := -height / 2

	feet := cp.NewBox2(body, cp.BB{L: -halfW, B: bottom, R: halfW, T: bottom + height - head}, 0)
	feet.SetFriction(bodyComp.Friction)
	feet.SetElasticity(bodyComp.Elasticity)
	feet.SetCollisionType(collisionTypeCharacter)
	feet.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(feet)

	info := &bodyInfo{body: body, shapes: []*cp.Shape{feet}}
	bodyComp.Body = body
	bodyComp.Shape = feet

	if head > 0 {
		headShape := cp.NewBox2(body, cp.BB{L: -halfW, B: bottom + height - head, R: halfW, T: height / 2}, 0)
		headShape.SetFriction(bodyComp.Friction)
		headShape.SetElasticity(bodyComp.Elasticity)
		headShape.SetCollisionType(collisionTypeCharacter)
		headShape.SetFilter(filter)
		ps.space.AddShape(headShape)
		info.shapes = append(info.shapes, headShape)
		bodyComp.HeadShape = headShape
	}

	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || bodyComp.Static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	removed := false
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		removed = true
	}
	if !removed {
		return
	}

	live := make(map[*cp.Shape]struct{})
	for _, info := range ps.entities {
		for _, shape := range info.shapes {
			live[shape] = struct{}{}
		}
	}
	kept := ps.shapes[:0]
	for _, shape := range ps.shapes {
		if _, ok := live[shape]; ok {
			kept = append(kept, shape)
		}
	}
	ps.shapes = kept
}
