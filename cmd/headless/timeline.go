package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/system"
	"github.com/milk9111/wallkick/scene"
	"gopkg.in/yaml.v3"
)

var ErrEmptyTimeline = errors.New("headless: timeline has no segments")

// Timeline is a scripted input run. Each segment holds its input for a
// number of fixed steps.
type Timeline struct {
	Level      string    `yaml:"level"`
	AirControl bool      `yaml:"air_control"`
	Segments   []Segment `yaml:"segments"`
}

type Segment struct {
	Frames int     `yaml:"frames"`
	Move   float64 `yaml:"move"`
	Crouch bool    `yaml:"crouch"`
	Slide  bool    `yaml:"slide"`
	// Jump presses once, on the segment's first step.
	Jump bool `yaml:"jump"`
	// Respawn requests a respawn before the segment's first step.
	Respawn bool `yaml:"respawn"`
}

func ParseTimeline(data []byte) (*Timeline, error) {
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("headless: unmarshal timeline: %w", err)
	}
	if len(tl.Segments) == 0 {
		return nil, ErrEmptyTimeline
	}
	for i, seg := range tl.Segments {
		if seg.Frames <= 0 {
			return nil, fmt.Errorf("headless: segment %d: frames %d must be positive", i, seg.Frames)
		}
		if seg.Move < -1 || seg.Move > 1 {
			return nil, fmt.Errorf("headless: segment %d: move %v outside [-1,1]", i, seg.Move)
		}
	}
	return &tl, nil
}

// Frames is the total number of fixed steps in the timeline.
func (tl *Timeline) Frames() int {
	n := 0
	for _, seg := range tl.Segments {
		n += seg.Frames
	}
	return n
}

// player feeds the current segment into the session's input system.
type player struct {
	sample system.InputSample
}

func (p *player) next() system.InputSample {
	out := p.sample
	p.sample.JumpPressed = false
	return out
}

// Options returns session options that replay the timeline.
func (tl *Timeline) Options(p *player) scene.Options {
	return scene.Options{
		Level:      tl.Level,
		AirControl: tl.AirControl,
		Hooks:      true,
		Sampler:    p.next,
	}
}

// Run replays tl on s, writing one line per event and a final state line.
func (tl *Timeline) Run(s *scene.Session, p *player, out io.Writer) error {
	for _, seg := range tl.Segments {
		if seg.Respawn {
			if err := s.RequestRespawn(); err != nil {
				return err
			}
		}
		p.sample = system.InputSample{
			MoveX:       seg.Move,
			Crouch:      seg.Crouch,
			Slide:       seg.Slide,
			JumpPressed: seg.Jump,
		}
		for i := 0; i < seg.Frames; i++ {
			s.Step()
			for _, evt := range s.Events() {
				fmt.Fprintf(out, "step %05d %s\n", s.Steps(), describe(evt))
			}
		}
	}

	c, err := s.Controller()
	if err != nil {
		return err
	}
	st := c.State()
	pos := c.Body().Position()
	vel := c.Body().Velocity()
	fmt.Fprintf(out, "final step=%d pos=(%.3f,%.3f) vel=(%.3f,%.3f) grounded=%t wall=%t crouching=%t sliding=%t facing_right=%t\n",
		s.Steps(), pos.X, pos.Y, vel.X, vel.Y, st.Grounded, st.OnWall, st.Crouching.Current, st.Sliding.Current, st.FacingRight)
	return nil
}

func describe(evt ecs.Event) string {
	switch evt.Type {
	case ecs.EventCrouch, ecs.EventSlide:
		if evt.Entering() {
			return evt.Type + " enter"
		}
		return evt.Type + " exit"
	}
	return evt.Type
}
