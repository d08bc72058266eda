package assets

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTone = errors.New("assets: invalid tone")

// Waveform selects the oscillator used by a Tone.
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveSquare   Waveform = "square"
	WaveTriangle Waveform = "triangle"
	WaveNoise    Waveform = "noise"
)

// Tone describes a short synthesized cue. Freq slides linearly to FreqEnd
// over Duration seconds when FreqEnd is set.
type Tone struct {
	Wave     Waveform
	Freq     float64
	FreqEnd  float64
	Duration float64
	Gain     float64
}

// PCM renders the tone as 16-bit little-endian stereo samples, the format
// ebiten's audio players consume.
func (t Tone) PCM(sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidTone, sampleRate)
	}
	if t.Duration <= 0 || t.Freq <= 0 {
		return nil, fmt.Errorf("%w: freq %v duration %v", ErrInvalidTone, t.Freq, t.Duration)
	}
	gain := t.Gain
	if gain <= 0 || gain > 1 {
		gain = 1
	}
	end := t.FreqEnd
	if end <= 0 {
		end = t.Freq
	}

	n := int(t.Duration * float64(sampleRate))
	out := make([]byte, n*4)
	phase := 0.0
	// xorshift keeps noise deterministic across runs
	seed := uint32(0x9e3779b9)
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := t.Freq + (end-t.Freq)*p
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		var v float64
		switch t.Wave {
		case WaveSquare:
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(phase-0.5) - 1
		case WaveNoise:
			seed ^= seed << 13
			seed ^= seed >> 17
			seed ^= seed << 5
			v = float64(seed)/float64(math.MaxUint32)*2 - 1
		default:
			v = math.Sin(2 * math.Pi * phase)
		}

		// short attack, linear release
		env := 1 - p
		if attack := 0.005 * float64(sampleRate); float64(i) < attack {
			env *= float64(i) / attack
		}

		s := int16(v * env * gain * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out, nil
}
