package system

import (
	"math"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/locomotion"
)

const (
	AnimIdle   = "idle"
	AnimRun    = "run"
	AnimJump   = "jump"
	AnimFall   = "fall"
	AnimLand   = "land"
	AnimCrouch = "crouch"
	AnimSlide  = "slide"
	AnimWall   = "wall"
)

const runThreshold = 0.1

// AnimationSystem derives the clip from controller state and advances it.
// A non-looping clip (set by a landing or a hook script) plays to its end
// before state derivation takes over again.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	landed := make(map[ecs.Entity]bool)
	for _, evt := range w.Events().Items() {
		if evt.Type == ecs.EventLanded {
			landed[evt.Entity] = true
		}
	}

	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.CharacterComponent.Kind(), func(e ecs.Entity, anim *component.Animation, ch *component.Character) {
		if ch.Controller == nil {
			return
		}

		next := DeriveAnimation(ch.Controller.State(), ch.Controller.Body().Velocity().X, ch.Controller.Body().Velocity().Y)
		if landed[e] && next == AnimIdle {
			if _, ok := anim.Defs[AnimLand]; ok {
				next = AnimLand
			}
		}

		if current, ok := anim.Defs[anim.Current]; !ok || current.Loop || !anim.Playing || next == AnimLand {
			SetAnimation(anim, next)
		}

		advanceAnimation(anim)
	})
}

// DeriveAnimation maps locomotion state to a clip name.
func DeriveAnimation(s locomotion.State, vx, vy float64) string {
	switch {
	case s.Sliding.Current:
		return AnimSlide
	case s.Crouching.Current:
		return AnimCrouch
	case !s.Grounded && s.OnWall:
		return AnimWall
	case !s.Grounded && vy > 0:
		return AnimJump
	case !s.Grounded:
		return AnimFall
	case math.Abs(vx) > runThreshold:
		return AnimRun
	default:
		return AnimIdle
	}
}

// SetAnimation switches clips, restarting only on a change of clip.
func SetAnimation(anim *component.Animation, name string) bool {
	if anim == nil || name == "" {
		return false
	}
	if _, ok := anim.Defs[name]; !ok {
		return false
	}
	if anim.Current == name && anim.Playing {
		return true
	}
	anim.Current = name
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
	return true
}

func advanceAnimation(anim *component.Animation) {
	def, ok := anim.Defs[anim.Current]
	if !ok || def.FrameCount <= 0 || !anim.Playing {
		return
	}

	// Advance frame every N ticks based on FPS and 60 TPS
	ticksPerFrame := 1
	if def.FPS > 0 {
		ticksPerFrame = int(60.0 / def.FPS)
	}
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	anim.FrameTimer++
	if anim.FrameTimer < ticksPerFrame {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame >= def.FrameCount {
		if def.Loop {
			anim.Frame = 0
		} else {
			anim.Frame = def.FrameCount - 1
			anim.Playing = false
		}
	}
}
