package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/common"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/locomotion"
)

// newPhysicsWorld builds a floor whose top is at y=0 and a character resting
// on it.
func newPhysicsWorld(t *testing.T) (*ecs.World, *PhysicsSystem, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	floor := w.CreateEntity()
	_ = ecs.Add(w, floor, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: -0.5, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, floor, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 20, Height: 1, Static: true})
	_ = ecs.Add(w, floor, component.SolidTagComponent.Kind(), &component.SolidTag{})

	player := w.CreateEntity()
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 0.5, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 0.8, Height: 1, HeadHeight: 0.5, Mass: 1})

	ps := NewPhysicsSystem(cp.Vector{Y: common.Gravity}, common.FixedStep)
	ps.Sync(w)
	return w, ps, floor, player
}

func TestPhysicsSyncCreatesBodies(t *testing.T) {
	w, ps, floor, player := newPhysicsWorld(t)

	floorBody, _ := ecs.Get(w, floor, component.PhysicsBodyComponent.Kind())
	if floorBody.Body != ps.Space().StaticBody || floorBody.Shape == nil {
		t.Fatalf("expected floor on the static body")
	}
	if floorBody.Shape.Filter.Categories != common.CategoryGround {
		t.Fatalf("expected floor in ground category, got %b", floorBody.Shape.Filter.Categories)
	}

	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Body == nil || body.Shape == nil || body.HeadShape == nil {
		t.Fatalf("expected character body with feet and head shapes")
	}
	if body.Shape.Filter.Categories != common.CategoryCharacter {
		t.Fatalf("expected character category, got %b", body.Shape.Filter.Categories)
	}

	// a second sync must not duplicate shapes
	before := len(ps.shapes)
	ps.Sync(w)
	if len(ps.shapes) != before {
		t.Fatalf("expected %d shapes after resync, got %d", before, len(ps.shapes))
	}
}

func TestPhysicsOverlapHonorsFilter(t *testing.T) {
	w, ps, floor, _ := newPhysicsWorld(t)
	floorBody, _ := ecs.Get(w, floor, component.PhysicsBodyComponent.Kind())

	hits := ps.Overlap(cp.Vector{X: 0, Y: 0.1}, 0.2, locomotion.GroundFilter())
	if len(hits) != 1 || hits[0] != floorBody.Shape {
		t.Fatalf("expected only the floor, got %d hits", len(hits))
	}

	all := ps.Overlap(cp.Vector{X: 0, Y: 0.1}, 0.2, cp.ShapeFilter{Categories: common.AllCategories, Mask: common.AllCategories})
	if len(all) != 2 {
		t.Fatalf("expected floor and character feet, got %d hits", len(all))
	}

	if hits := ps.Overlap(cp.Vector{X: 0, Y: 5}, 0.2, locomotion.GroundFilter()); len(hits) != 0 {
		t.Fatalf("expected no hits in open air, got %d", len(hits))
	}
}

func TestPhysicsCleanupDropsDestroyedEntities(t *testing.T) {
	w, ps, floor, _ := newPhysicsWorld(t)
	w.DestroyEntity(floor)
	ps.Sync(w)

	if hits := ps.Overlap(cp.Vector{X: 0, Y: -0.5}, 0.2, locomotion.GroundFilter()); len(hits) != 0 {
		t.Fatalf("expected destroyed floor to be gone, got %d hits", len(hits))
	}
	if len(ps.shapes) != 2 {
		t.Fatalf("expected only the character shapes to remain, got %d", len(ps.shapes))
	}
}

func TestPhysicsUpdateSyncsTransforms(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	tr := &component.Transform{X: 0, Y: 10, ScaleX: 1, ScaleY: 1}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), tr)
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Height: 1, Mass: 1})

	ps := NewPhysicsSystem(cp.Vector{Y: common.Gravity}, common.FixedStep)
	for i := 0; i < 10; i++ {
		ps.Update(w)
	}
	if tr.Y >= 10 {
		t.Fatalf("expected body to fall under gravity, y=%v", tr.Y)
	}
}

func TestRejects(t *testing.T) {
	ground := cp.ShapeFilter{Categories: common.CategoryGround, Mask: common.AllCategories}
	tests := []struct {
		name  string
		query cp.ShapeFilter
		shape cp.ShapeFilter
		want  bool
	}{
		{name: "ground_query_matches_ground", query: locomotion.GroundFilter(), shape: ground, want: false},
		{name: "ground_query_skips_character", query: locomotion.GroundFilter(), shape: cp.ShapeFilter{Categories: common.CategoryCharacter, Mask: common.AllCategories}, want: true},
		{name: "disabled_shape", query: locomotion.GroundFilter(), shape: cp.ShapeFilter{}, want: true},
		{name: "same_group", query: cp.ShapeFilter{Group: 3, Categories: common.AllCategories, Mask: common.AllCategories}, shape: cp.ShapeFilter{Group: 3, Categories: common.CategoryGround, Mask: common.AllCategories}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rejects(tc.query, tc.shape); got != tc.want {
				t.Fatalf("rejects = %v, want %v", got, tc.want)
			}
		})
	}
}
