package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/system"
	"github.com/milk9111/wallkick/levels"
	"github.com/milk9111/wallkick/prefabs"
)

const flatLevel = `
name: test
kill_y: -7
spawn: { x: 0, y: 2 }
solids:
  - { x: -20, y: -1, w: 40, h: 1 }
`

type scriptedInput struct {
	sample system.InputSample
}

func (s *scriptedInput) next() system.InputSample {
	out := s.sample
	s.sample.JumpPressed = false
	return out
}

func newTestSession(t *testing.T, levelYAML string, opts Options) (*Session, *scriptedInput) {
	t.Helper()
	lvl, err := levels.Parse([]byte(levelYAML))
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player spec: %v", err)
	}
	in := &scriptedInput{}
	opts.Sampler = in.next
	s, err := NewWithSpecs(lvl, spec, &prefabs.CameraSpec{}, opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, in
}

func countEvents(s *Session, typ string) int {
	n := 0
	for _, evt := range s.Events() {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func TestCharacterFallsAndLandsOnce(t *testing.T) {
	s, _ := newTestSession(t, flatLevel, Options{Hooks: true})

	landed := 0
	for i := 0; i < 100; i++ {
		s.Step()
		landed += countEvents(s, ecs.EventLanded)
	}

	if landed != 1 {
		t.Fatalf("expected exactly one landing, got %d", landed)
	}
	c, err := s.Controller()
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	if !c.State().Grounded {
		t.Fatalf("expected character to be grounded")
	}
	if y := c.Body().Position().Y; y < 0.3 || y > 0.8 {
		t.Fatalf("expected character resting on the floor, y=%v", y)
	}
	if s.Steps() != 100 {
		t.Fatalf("expected 100 steps, got %d", s.Steps())
	}
}

func TestJumpLeavesGroundAndComesBack(t *testing.T) {
	s, in := newTestSession(t, flatLevel, Options{})
	for i := 0; i < 60; i++ {
		s.Step()
	}
	c, _ := s.Controller()
	restY := c.Body().Position().Y

	in.sample.JumpPressed = true
	maxY := restY
	landed := 0
	for i := 0; i < 80; i++ {
		s.Step()
		maxY = math.Max(maxY, c.Body().Position().Y)
		landed += countEvents(s, ecs.EventLanded)
	}

	if maxY < restY+1.5 {
		t.Fatalf("expected jump to rise at least 1.5 units, rest=%v max=%v", restY, maxY)
	}
	if landed == 0 || !c.State().Grounded {
		t.Fatalf("expected to land again, landed=%d grounded=%v", landed, c.State().Grounded)
	}
}

func TestFallingBelowKillPlaneRespawns(t *testing.T) {
	s, _ := newTestSession(t, `
kill_y: -3
spawn: { x: 0, y: 2 }
solids:
  - { x: 100, y: 0, w: 1, h: 1 }
`, Options{})

	respawns := 0
	for i := 0; i < 60; i++ {
		s.Step()
		respawns += countEvents(s, ecs.EventRespawn)
	}
	if respawns == 0 {
		t.Fatalf("expected at least one respawn")
	}
}

func TestRequestRespawnReturnsToSpawn(t *testing.T) {
	s, in := newTestSession(t, flatLevel, Options{})
	in.sample.MoveX = 1
	for i := 0; i < 80; i++ {
		s.Step()
	}
	c, _ := s.Controller()
	if x := c.Body().Position().X; x < 2 {
		t.Fatalf("expected character to have run right, x=%v", x)
	}

	in.sample.MoveX = 0
	if err := s.RequestRespawn(); err != nil {
		t.Fatalf("request respawn: %v", err)
	}
	s.Step()

	if countEvents(s, ecs.EventRespawn) != 1 {
		t.Fatalf("expected one respawn event, got %+v", s.Events())
	}
	if x := c.Body().Position().X; math.Abs(x) > 0.5 {
		t.Fatalf("expected character back near spawn, x=%v", x)
	}
}

func TestSetAirControlSurvivesReload(t *testing.T) {
	s, _ := newTestSession(t, flatLevel, Options{})
	if s.AirControl() {
		t.Fatalf("expected air control off by default")
	}
	if err := s.SetAirControl(true); err != nil {
		t.Fatalf("set air control: %v", err)
	}
	if err := s.ReloadPlayerSpec(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s.AirControl() {
		t.Fatalf("expected air control to survive reload")
	}
	c, _ := s.Controller()
	if c.Config().RespawnY != -7 {
		t.Fatalf("expected level kill height to survive reload, got %v", c.Config().RespawnY)
	}
}

func TestFrameRunsDueFixedSteps(t *testing.T) {
	s, _ := newTestSession(t, flatLevel, Options{})
	if n := s.Frame(0.05); n != 2 {
		t.Fatalf("expected 2 fixed steps, got %d", n)
	}
	if a := s.Alpha(); math.Abs(a-0.5) > 1e-6 {
		t.Fatalf("expected alpha 0.5, got %v", a)
	}
	if n := s.Frame(0.001); n != 0 {
		t.Fatalf("expected no fixed step, got %d", n)
	}
	if s.Steps() != 2 {
		t.Fatalf("expected 2 steps total, got %d", s.Steps())
	}
}

func TestRespawnWithoutPlayer(t *testing.T) {
	s, _ := newTestSession(t, flatLevel, Options{})
	s.World.DestroyEntity(s.Player)
	if err := s.RequestRespawn(); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
	if _, err := s.Controller(); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer from Controller, got %v", err)
	}
}
