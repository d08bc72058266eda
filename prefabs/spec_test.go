package prefabs

import (
	"errors"
	"testing"

	"github.com/milk9111/wallkick/locomotion"
)

func TestEmbeddedPlayerSpecIsValid(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load player spec: %v", err)
	}
	cfg, err := spec.Controller.Config()
	if err != nil {
		t.Fatalf("player controller config: %v", err)
	}
	if cfg.JumpForce <= 0 || cfg.GroundCheck == nil || cfg.WallCheck == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if spec.Script == "" {
		t.Fatalf("expected a hook script")
	}
	if _, err := LoadScript(spec.Script); err != nil {
		t.Fatalf("load hook script: %v", err)
	}
	for key, clip := range spec.Cues {
		found := false
		for _, a := range spec.Audio {
			if a.Name == clip {
				found = true
			}
		}
		if !found {
			t.Fatalf("cue %q references unknown clip %q", key, clip)
		}
	}
	if _, ok := spec.Animation.Defs[spec.Animation.Current]; !ok {
		t.Fatalf("initial animation %q has no def", spec.Animation.Current)
	}
}

func TestParsePlayerSpecOverlaysDefaults(t *testing.T) {
	spec, err := ParsePlayerSpec([]byte("controller:\n  air_control: true\n  ground_check: { y: -0.6 }\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := spec.Controller.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	def := locomotion.DefaultConfig()
	if !cfg.AirControl {
		t.Fatalf("expected air control override")
	}
	if cfg.JumpForce != def.JumpForce || cfg.CrouchSpeed != def.CrouchSpeed {
		t.Fatalf("expected untouched keys to keep defaults, got %+v", cfg)
	}
	if cfg.GroundCheck.Y != -0.6 || cfg.GroundCheck.X != def.GroundCheck.X {
		t.Fatalf("expected partial probe override, got %+v", *cfg.GroundCheck)
	}
	if spec.RunSpeed != 40 {
		t.Fatalf("expected default run speed, got %v", spec.RunSpeed)
	}
}

func TestParsePlayerSpecRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{name: "crouch_speed", yaml: "controller:\n  crouch_speed: 2\n", want: locomotion.ErrInvalidConfig},
		{name: "ground_radius", yaml: "controller:\n  ground_radius: 0\n", want: locomotion.ErrInvalidConfig},
		{name: "missing_probe", yaml: "controller:\n  wall_check: null\n", want: locomotion.ErrMissingProbe},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePlayerSpec([]byte(tc.yaml))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := ParsePlayerSpec([]byte("body:\n  width: 0\n")); err == nil {
		t.Fatalf("expected error for zero width body")
	}
	if _, err := ParsePlayerSpec([]byte("run_speed: [")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestYAMLColor(t *testing.T) {
	spec, err := ParsePlayerSpec([]byte("animation:\n  defs:\n    idle: { frame_count: 1, color: \"#10203080\" }\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := spec.Animation.Defs["idle"].Color.NRGBA()
	if c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0x80 {
		t.Fatalf("unexpected color %+v", c)
	}
	if _, err := ParsePlayerSpec([]byte("animation:\n  defs:\n    idle: { color: \"#123\" }\n")); err == nil {
		t.Fatalf("expected invalid color error")
	}
}

func TestScriptAndPrefabPaths(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "player_hooks.tengo", want: "scripts/player_hooks.tengo"},
		{in: "scripts/player_hooks.tengo", want: "scripts/player_hooks.tengo"},
		{in: "prefabs/scripts/player_hooks.tengo", want: "scripts/player_hooks.tengo"},
	}
	for _, tc := range tests {
		if got := cleanScriptPath(tc.in); got != tc.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if !IsPlayerSpec("prefabs/player.yaml") || IsPlayerSpec("prefabs/camera.yaml") {
		t.Fatalf("unexpected IsPlayerSpec results")
	}
	if classify("prefabs/scripts/x.tengo") != ChangeScript || classify("levels/a.yaml") != ChangeLevel || classify("prefabs/p.yaml") != ChangeSpec || classify("notes.txt") != 0 {
		t.Fatalf("unexpected classify results")
	}
}
