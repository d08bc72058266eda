package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/wallkick/common"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"golang.org/x/image/colornames"
)

// View converts world units (Y up) to screen pixels (Y down).
type View struct {
	CamX, CamY float64
	Zoom       float64
}

func (v View) scale() float64 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return common.PixelsPerUnit * zoom
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	s := v.scale()
	return (x-v.CamX)*s + common.BaseWidth/2, common.BaseHeight/2 - (y-v.CamY)*s
}

// CameraView reads the view from the first camera entity.
func CameraView(w *ecs.World) View {
	view := View{Zoom: 1}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return view
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		view.CamX = t.X
		view.CamY = t.Y
	}
	if c, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		view.Zoom = c.Zoom
	}
	return view
}

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Draw renders solids, then characters as boxes tinted by animation clip.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)
	view := CameraView(w)

	for _, e := range w.Query(component.SolidTagComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		drawBox(screen, view, t.X, t.Y, body.Width, body.Height, colornames.Slategray)
	}

	characters := w.Query(component.CharacterComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	sort.SliceStable(characters, func(i, j int) bool { return uint64(characters[i]) < uint64(characters[j]) })
	for _, e := range characters {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		clr := color.Color(colornames.Crimson)
		width, height := body.Width, body.Height
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			if def, ok := anim.Defs[anim.Current]; ok {
				if def.Color.A > 0 {
					clr = def.Color
				}
				width, height = squash(anim.Current, anim.Frame, width, height)
			}
		}

		// crouched boxes sit on the feet
		bottom := t.Y - body.Height/2
		drawBox(screen, view, t.X, bottom+height/2, width, height, clr)

		// eye marks the facing side
		eyeX := t.X + common.Sign(t.ScaleX)*width*0.25
		drawBox(screen, view, eyeX, bottom+height*0.75, width*0.15, height*0.12, colornames.White)
	}
}

// squash shrinks crouch and slide poses and adds a small landing bounce.
func squash(clip string, frame int, w, h float64) (float64, float64) {
	switch clip {
	case AnimCrouch:
		return w, h * 0.5
	case AnimSlide:
		return w * 1.25, h * 0.45
	case AnimLand:
		k := 0.85 + 0.05*float64(frame)
		if k > 1 {
			k = 1
		}
		return w * (2 - k), h * k
	}
	return w, h
}

func drawBox(screen *ebiten.Image, view View, cx, cy, w, h float64, clr color.Color) {
	x0, y0 := view.ToScreen(cx-w/2, cy+h/2)
	s := view.scale()
	vector.FillRect(screen, float32(x0), float32(y0), float32(w*s), float32(h*s), clr, false)
}
