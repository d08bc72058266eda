package component

import "image/color"

type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
	Color      color.NRGBA
}

// Animation tracks the clip derived from locomotion state. Frames drive the
// procedural squash in the renderer.
type Animation struct {
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
