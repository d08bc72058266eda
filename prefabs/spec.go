package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/locomotion"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name       string            `yaml:"name"`
	RunSpeed   float64           `yaml:"run_speed"`
	Body       BodySpec          `yaml:"body"`
	Controller ControllerSpec    `yaml:"controller"`
	Animation  AnimationSpec     `yaml:"animation"`
	Audio      []AudioSpec       `yaml:"audio"`
	Cues       map[string]string `yaml:"cues"`
	Script     string            `yaml:"script"`
}

// DefaultPlayerSpec is the base that player.yaml is decoded over, so a file
// only needs the keys it changes.
func DefaultPlayerSpec() PlayerSpec {
	cfg := locomotion.DefaultConfig()
	return PlayerSpec{
		Name:     "player",
		RunSpeed: 40,
		Body: BodySpec{
			Width:      0.8,
			Height:     1.0,
			HeadHeight: 0.5,
			Mass:       1,
		},
		Controller: ControllerSpecFromConfig(cfg),
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	data, err := Load("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load player.yaml: %w", err)
	}
	return ParsePlayerSpec(data)
}

// ParsePlayerSpec decodes and validates a player prefab.
func ParsePlayerSpec(data []byte) (*PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player.yaml: %w", err)
	}
	if spec.RunSpeed < 0 {
		return nil, fmt.Errorf("prefabs: player run_speed %v is negative", spec.RunSpeed)
	}
	if spec.Body.Width <= 0 || spec.Body.Height <= 0 {
		return nil, fmt.Errorf("prefabs: player body %vx%v must be positive", spec.Body.Width, spec.Body.Height)
	}
	if _, err := spec.Controller.Config(); err != nil {
		return nil, fmt.Errorf("prefabs: player controller: %w", err)
	}
	return &spec, nil
}

type BodySpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	HeadHeight float64 `yaml:"head_height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v *VectorSpec) vector() *cp.Vector {
	if v == nil {
		return nil
	}
	return &cp.Vector{X: v.X, Y: v.Y}
}

// ControllerSpec mirrors locomotion.Config in YAML form.
type ControllerSpec struct {
	JumpForce         float64     `yaml:"jump_force"`
	CrouchSpeed       float64     `yaml:"crouch_speed"`
	SlideSpeed        float64     `yaml:"slide_speed"`
	MovementSmoothing float64     `yaml:"movement_smoothing"`
	AirControl        bool        `yaml:"air_control"`
	FallMultiplier    float64     `yaml:"fall_multiplier"`
	FallDecay         float64     `yaml:"fall_decay"`
	WallJumpKick      VectorSpec  `yaml:"wall_jump_kick"`
	SpeedScale        float64     `yaml:"speed_scale"`
	GroundRadius      float64     `yaml:"ground_radius"`
	CeilingRadius     float64     `yaml:"ceiling_radius"`
	GroundCheck       *VectorSpec `yaml:"ground_check"`
	CeilingCheck      *VectorSpec `yaml:"ceiling_check"`
	WallCheck         *VectorSpec `yaml:"wall_check"`
	RespawnY          float64     `yaml:"respawn_y"`
}

func ControllerSpecFromConfig(cfg locomotion.Config) ControllerSpec {
	vec := func(v *cp.Vector) *VectorSpec {
		if v == nil {
			return nil
		}
		return &VectorSpec{X: v.X, Y: v.Y}
	}
	return ControllerSpec{
		JumpForce:         cfg.JumpForce,
		CrouchSpeed:       cfg.CrouchSpeed,
		SlideSpeed:        cfg.SlideSpeed,
		MovementSmoothing: cfg.MovementSmoothing,
		AirControl:        cfg.AirControl,
		FallMultiplier:    cfg.FallMultiplier,
		FallDecay:         cfg.FallDecay,
		WallJumpKick:      VectorSpec{X: cfg.WallJumpKick.X, Y: cfg.WallJumpKick.Y},
		SpeedScale:        cfg.SpeedScale,
		GroundRadius:      cfg.GroundRadius,
		CeilingRadius:     cfg.CeilingRadius,
		GroundCheck:       vec(cfg.GroundCheck),
		CeilingCheck:      vec(cfg.CeilingCheck),
		WallCheck:         vec(cfg.WallCheck),
		RespawnY:          cfg.RespawnY,
	}
}

// Config converts the spec and validates it.
func (c ControllerSpec) Config() (locomotion.Config, error) {
	cfg := locomotion.Config{
		JumpForce:         c.JumpForce,
		CrouchSpeed:       c.CrouchSpeed,
		SlideSpeed:        c.SlideSpeed,
		MovementSmoothing: c.MovementSmoothing,
		AirControl:        c.AirControl,
		FallMultiplier:    c.FallMultiplier,
		FallDecay:         c.FallDecay,
		WallJumpKick:      cp.Vector{X: c.WallJumpKick.X, Y: c.WallJumpKick.Y},
		SpeedScale:        c.SpeedScale,
		GroundRadius:      c.GroundRadius,
		CeilingRadius:     c.CeilingRadius,
		GroundCheck:       c.GroundCheck.vector(),
		CeilingCheck:      c.CeilingCheck.vector(),
		WallCheck:         c.WallCheck.vector(),
		GroundFilter:      locomotion.GroundFilter(),
		RespawnY:          c.RespawnY,
	}
	if err := cfg.Validate(); err != nil {
		return locomotion.Config{}, err
	}
	return cfg, nil
}

type AnimationSpec struct {
	Current string                      `yaml:"current"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
}

type AnimationDefSpec struct {
	FrameCount int       `yaml:"frame_count"`
	FPS        float64   `yaml:"fps"`
	Loop       bool      `yaml:"loop"`
	Color      YAMLColor `yaml:"color"`
}

// AudioSpec describes a synthesized cue clip.
type AudioSpec struct {
	Name     string  `yaml:"name"`
	Wave     string  `yaml:"wave"`
	Freq     float64 `yaml:"freq"`
	FreqEnd  float64 `yaml:"freq_end"`
	Duration float64 `yaml:"duration"`
	Volume   float64 `yaml:"volume"`
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Target     string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	LookOffset float64 `yaml:"look_offset"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the parsed color, or transparent when unset.
func (c YAMLColor) NRGBA() color.NRGBA {
	if c.Color == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
