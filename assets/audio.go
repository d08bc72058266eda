package assets

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use so headless runs never open an output device.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// NewTonePlayer synthesizes a blip and wraps it in a player.
func NewTonePlayer(t Tone) (*audio.Player, error) {
	pcm, err := t.PCM(SampleRate)
	if err != nil {
		return nil, err
	}
	return AudioContext().NewPlayerFromBytes(pcm), nil
}
