package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/wallkick/scene"
)

func TestParseTimeline(t *testing.T) {
	tl, err := ParseTimeline(defaultTimeline)
	if err != nil {
		t.Fatalf("parse default timeline: %v", err)
	}
	if tl.Level != "training" || tl.Frames() != 217 {
		t.Fatalf("unexpected timeline level=%q frames=%d", tl.Level, tl.Frames())
	}
}

func TestParseTimelineRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: "level: training\n"},
		{name: "zero_frames", yaml: "segments:\n  - { frames: 0 }\n"},
		{name: "move_out_of_range", yaml: "segments:\n  - { frames: 1, move: 2 }\n"},
		{name: "bad_yaml", yaml: "segments: ["},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTimeline([]byte(tc.yaml)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := ParseTimeline([]byte("level: x\n")); !errors.Is(err, ErrEmptyTimeline) {
		t.Fatalf("expected ErrEmptyTimeline, got %v", err)
	}
}

func TestRunPrintsEventsAndFinalState(t *testing.T) {
	tl, err := ParseTimeline([]byte(`
level: flat
segments:
  - { frames: 60 }
  - { frames: 10, crouch: true }
  - { frames: 10 }
  - { frames: 1, respawn: true }
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	p := &player{}
	s, err := scene.New(tl.Options(p))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer s.Close()

	var out bytes.Buffer
	if err := tl.Run(s, p, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, want := range []string{" landed\n", " crouch enter\n", " crouch exit\n", " respawn\n", "final step=81 "} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}
