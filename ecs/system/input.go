package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

const stickDeadzone = 0.2

// InputSample is one frame of raw device state.
type InputSample struct {
	MoveX       float64
	Crouch      bool
	Slide       bool
	JumpPressed bool
}

// InputSystem samples devices once per visual frame. Jump presses are
// latched until a fixed step consumes them, so a press on a frame that runs
// no fixed step is not lost.
type InputSystem struct {
	sample func() InputSample
}

func NewInputSystem() *InputSystem {
	return &InputSystem{sample: SampleDevices}
}

// NewInputSystemWithSampler replaces device polling, for replays and tests.
func NewInputSystemWithSampler(sample func() InputSample) *InputSystem {
	return &InputSystem{sample: sample}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.sample == nil {
		return
	}

	s := i.sample()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = s.MoveX
		input.Crouch = s.Crouch
		input.Slide = s.Slide
		input.JumpPressed = input.JumpPressed || s.JumpPressed
	})
}

// SampleDevices reads the keyboard and the first standard gamepad.
func SampleDevices() InputSample {
	var s InputSample

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.MoveX += 1
	}
	s.Crouch = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyControlLeft)
	s.Slide = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	s.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			s.MoveX = leftX
		}
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		s.Crouch = s.Crouch || leftY > 0.5 || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		s.Slide = s.Slide || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		s.JumpPressed = s.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return s
}
