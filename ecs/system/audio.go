package system

import (
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
)

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// CueKey is the cue table key for an event. Crouch and slide exits use an
// "_end" suffix.
func CueKey(evt ecs.Event) string {
	switch evt.Type {
	case ecs.EventCrouch, ecs.EventSlide:
		if !evt.Entering() {
			return evt.Type + "_end"
		}
	}
	return evt.Type
}

func (a *AudioSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Items() {
		cues, ok := ecs.Get(w, evt.Entity, component.AudioCuesComponent.Kind())
		if !ok {
			continue
		}
		name, ok := cues.Cues[CueKey(evt)]
		if !ok {
			continue
		}
		if audioComp, ok := ecs.Get(w, evt.Entity, component.AudioComponent.Kind()); ok {
			audioComp.Request(name)
		}
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil {
				player.SetVolume(audioComp.Volume[i])
				player.Rewind()
				player.Play()
			}

			audioComp.Play[i] = false
		}

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}

			audioComp.Stop[i] = false
		}
	})
}
