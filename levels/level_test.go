package levels

import (
	"errors"
	"testing"

	"github.com/milk9111/wallkick/common"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	for _, name := range []string{"", "training", "flat.yaml", "levels/training.yaml"} {
		lvl, err := Load(name)
		if err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
		if len(lvl.Solids) == 0 {
			t.Fatalf("level %q has no solids", name)
		}
	}
}

func TestParseDefaultsGravity(t *testing.T) {
	lvl, err := Parse([]byte("solids:\n  - { x: 0, y: 0, w: 1, h: 1 }\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lvl.Gravity != common.Gravity {
		t.Fatalf("expected default gravity %v, got %v", common.Gravity, lvl.Gravity)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no_solids", yaml: "name: empty\n"},
		{name: "zero_size", yaml: "solids:\n  - { x: 0, y: 0, w: 0, h: 1 }\n"},
		{name: "spawn_below_kill", yaml: "kill_y: 2\nspawn: { x: 0, y: 1 }\nsolids:\n  - { x: 0, y: 0, w: 1, h: 1 }\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}

func TestBoundsAndCenter(t *testing.T) {
	lvl := &Level{
		Spawn: Point{X: 1, Y: 1},
		Solids: []Solid{
			{X: -2, Y: -1, W: 4, H: 1},
			{X: 5, Y: 0, W: 1, H: 6},
		},
	}
	minX, minY, maxX, maxY := lvl.Bounds()
	if minX != -2 || minY != -1 || maxX != 6 || maxY != 6 {
		t.Fatalf("unexpected bounds %v %v %v %v", minX, minY, maxX, maxY)
	}
	cx, cy := lvl.Solids[0].Center()
	if cx != 0 || cy != -0.5 {
		t.Fatalf("unexpected center %v %v", cx, cy)
	}
}
