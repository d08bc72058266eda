package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	drawer := &physicsDebugDrawer{screen: screen, view: CameraView(w)}
	cp.DrawSpace(space, drawer)
	drawProbes(w, drawer)
}

// drawProbes outlines the contact probes, filled while they report contact.
func drawProbes(w *ecs.World, d *physicsDebugDrawer) {
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(_ ecs.Entity, ch *component.Character) {
		if ch.Controller == nil {
			return
		}
		cfg := ch.Controller.Config()
		s := ch.Controller.State()

		probes := []struct {
			offset *cp.Vector
			radius float64
			hit    bool
		}{
			{offset: cfg.GroundCheck, radius: cfg.GroundRadius, hit: s.Grounded},
			{offset: cfg.CeilingCheck, radius: cfg.CeilingRadius, hit: s.Crouching.Current},
			{offset: cfg.WallCheck, radius: cfg.GroundRadius, hit: s.OnWall},
		}
		for _, p := range probes {
			if p.offset == nil {
				continue
			}
			center := ch.Controller.ProbePoint(*p.offset)
			clr := color.Color(colornames.Yellow)
			if p.hit {
				clr = colornames.Orange
				x, y := d.view.ToScreen(center.X, center.Y)
				vector.FillCircle(d.screen, float32(x), float32(y), float32(p.radius*d.view.scale()), clr, true)
				continue
			}
			d.drawCircle(center, p.radius, clr)
		}
	})
}

func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.CharacterComponent.Kind())
	if !ok {
		return
	}
	ch, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return
	}
	s := ch.Controller.State()
	v := ch.Controller.Body().Velocity()
	anim := "none"
	if a, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		anim = a.Current
	}
	text := fmt.Sprintf("Anim: %s\nGrounded: %v\nOnWall: %v\nCrouching: %v\nSliding: %v\nWallJumping: %v\nCanDoubleJump: %v\nFacing: %+.0f\nVelocity: %.2f, %.2f\nAirControl: %v",
		anim, s.Grounded, s.OnWall, s.Crouching.Current, s.Sliding.Current, s.WallJumping, s.CanDoubleJump, s.FacingDirection, v.X, v.Y, ch.Controller.Config().AirControl)
	ebitenutil.DebugPrintAt(screen, text, 10, 24)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   View
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, toNRGBA(outline))
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(outline))
	if radius > 0 {
		d.drawCircle(a, radius, toNRGBA(outline))
		d.drawCircle(b, radius, toNRGBA(outline))
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.ToScreen(pos.X, pos.Y)
	vector.FillCircle(d.screen, float32(x), float32(y), float32(size/2), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr color.Color) {
	x1, y1 := d.view.ToScreen(a.X, a.Y)
	x2, y2 := d.view.ToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, clr, true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, clr color.Color) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
