package entity

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/wallkick/assets"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/prefabs"
)

// PlayerOptions adjust a player built from its prefab.
type PlayerOptions struct {
	X, Y float64
	// KillY replaces the prefab's respawn height when non-zero.
	KillY float64
	// AirControl forces air control on.
	AirControl bool
	// Audio synthesizes the cue clips. Headless runs leave it off.
	Audio bool
}

// NewPlayer builds the player from spec. The controller is bound later, once
// the physics system has created the body.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, opts PlayerOptions) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	cfg, err := spec.Controller.Config()
	if err != nil {
		return 0, fmt.Errorf("player: controller config: %w", err)
	}
	if opts.KillY != 0 {
		cfg.RespawnY = opts.KillY
	}
	if opts.AirControl {
		cfg.AirControl = true
	}

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: opts.X, Y: opts.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Body.Width,
		Height:     spec.Body.Height,
		HeadHeight: spec.Body.HeadHeight,
		Mass:       spec.Body.Mass,
		Friction:   spec.Body.Friction,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Config: cfg, RunSpeed: spec.RunSpeed}); err != nil {
		return 0, fmt.Errorf("player: add character: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), animationFromSpec(spec.Animation)); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}
	if len(spec.Cues) > 0 {
		if err := ecs.Add(w, e, component.AudioCuesComponent.Kind(), &component.AudioCues{Cues: spec.Cues}); err != nil {
			return 0, fmt.Errorf("player: add audio cues: %w", err)
		}
	}
	if opts.Audio && len(spec.Audio) > 0 {
		if err := ecs.Add(w, e, component.AudioComponent.Kind(), audioFromSpec(spec.Audio)); err != nil {
			return 0, fmt.Errorf("player: add audio: %w", err)
		}
	}
	if spec.Script != "" {
		if err := ecs.Add(w, e, component.HooksComponent.Kind(), &component.Hooks{ScriptPath: spec.Script}); err != nil {
			return 0, fmt.Errorf("player: add hooks: %w", err)
		}
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	return e, nil
}

func animationFromSpec(spec prefabs.AnimationSpec) *component.Animation {
	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			Loop:       def.Loop,
			Color:      def.Color.NRGBA(),
		}
	}
	current := spec.Current
	if current == "" {
		current = "idle"
	}
	return &component.Animation{Defs: defs, Current: current, Playing: true}
}

// audioFromSpec synthesizes each clip. A clip that fails is kept with a nil
// player so cue names still line up.
func audioFromSpec(clips []prefabs.AudioSpec) *component.Audio {
	a := &component.Audio{
		Names:   make([]string, 0, len(clips)),
		Players: make([]*audio.Player, 0, len(clips)),
		Volume:  make([]float64, 0, len(clips)),
		Play:    make([]bool, len(clips)),
		Stop:    make([]bool, len(clips)),
	}
	for _, clip := range clips {
		player, err := assets.NewTonePlayer(assets.Tone{
			Wave:     assets.Waveform(clip.Wave),
			Freq:     clip.Freq,
			FreqEnd:  clip.FreqEnd,
			Duration: clip.Duration,
			Gain:     1,
		})
		if err != nil {
			log.Printf("player: audio clip %q: %v", clip.Name, err)
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		a.Names = append(a.Names, clip.Name)
		a.Players = append(a.Players, player)
		a.Volume = append(a.Volume, volume)
	}
	return a
}
