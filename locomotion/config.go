package locomotion

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/common"
)

var (
	ErrNilBody       = errors.New("locomotion: body is nil")
	ErrNilContacts   = errors.New("locomotion: contacts is nil")
	ErrMissingProbe  = errors.New("locomotion: contact probe not configured")
	ErrInvalidConfig = errors.New("locomotion: invalid config")
)

// Config holds the controller tunables. It is validated once by New or
// SetConfig and never mutated by the controller.
type Config struct {
	// JumpForce is the upward impulse of a grounded jump and the continuous
	// force of a double jump.
	JumpForce float64
	// CrouchSpeed scales movement while crouching. 1 = 100%.
	CrouchSpeed float64
	// SlideSpeed scales movement while sliding.
	SlideSpeed float64
	// MovementSmoothing is the SmoothDamp time constant for horizontal velocity.
	MovementSmoothing float64
	// AirControl lets the character steer while airborne.
	AirControl bool
	// FallMultiplier scales gravity while falling.
	FallMultiplier float64
	// FallDecay is the fraction of vertical velocity removed per wall contact.
	FallDecay float64
	// WallJumpKick is added to velocity on a wall jump; X points away from the wall.
	WallJumpKick cp.Vector
	// SpeedScale converts move intent into target horizontal velocity.
	SpeedScale float64

	GroundRadius  float64
	CeilingRadius float64

	// Probe offsets from the body position, authored facing right. X is
	// mirrored while facing left.
	GroundCheck  *cp.Vector
	CeilingCheck *cp.Vector
	WallCheck    *cp.Vector

	// GroundFilter selects what counts as ground, ceiling and wall.
	GroundFilter cp.ShapeFilter

	// RespawnY is the world height below which the character is teleported
	// back to its initial position.
	RespawnY float64
}

// DefaultConfig returns tunables for a 0.8x1.0 character box.
func DefaultConfig() Config {
	return Config{
		JumpForce:         12,
		CrouchSpeed:       0.36,
		SlideSpeed:        1.8,
		MovementSmoothing: 0.05,
		AirControl:        false,
		FallMultiplier:    2.5,
		FallDecay:         0.2,
		WallJumpKick:      cp.Vector{X: 10, Y: 10},
		SpeedScale:        10,
		GroundRadius:      0.2,
		CeilingRadius:     0.2,
		GroundCheck:       &cp.Vector{X: 0, Y: -0.55},
		CeilingCheck:      &cp.Vector{X: 0, Y: 0.55},
		WallCheck:         &cp.Vector{X: 0.45, Y: 0},
		GroundFilter:      GroundFilter(),
		RespawnY:          -7,
	}
}

// GroundFilter is a query filter matching shapes in the ground category.
func GroundFilter() cp.ShapeFilter {
	return cp.ShapeFilter{Categories: common.AllCategories, Mask: common.CategoryGround}
}

// Validate reports the first configuration contract violation.
func (c Config) Validate() error {
	switch {
	case c.GroundCheck == nil:
		return fmt.Errorf("%w: ground check", ErrMissingProbe)
	case c.CeilingCheck == nil:
		return fmt.Errorf("%w: ceiling check", ErrMissingProbe)
	case c.WallCheck == nil:
		return fmt.Errorf("%w: wall check", ErrMissingProbe)
	case c.GroundRadius <= 0:
		return fmt.Errorf("%w: ground radius %v must be positive", ErrInvalidConfig, c.GroundRadius)
	case c.CeilingRadius <= 0:
		return fmt.Errorf("%w: ceiling radius %v must be positive", ErrInvalidConfig, c.CeilingRadius)
	case c.CrouchSpeed < 0 || c.CrouchSpeed > 1:
		return fmt.Errorf("%w: crouch speed %v outside [0,1]", ErrInvalidConfig, c.CrouchSpeed)
	case c.MovementSmoothing < 0 || c.MovementSmoothing > 0.3:
		return fmt.Errorf("%w: movement smoothing %v outside [0,0.3]", ErrInvalidConfig, c.MovementSmoothing)
	case c.FallDecay < 0 || c.FallDecay > 1:
		return fmt.Errorf("%w: fall decay %v outside [0,1]", ErrInvalidConfig, c.FallDecay)
	case c.FallMultiplier < 0:
		return fmt.Errorf("%w: fall multiplier %v is negative", ErrInvalidConfig, c.FallMultiplier)
	case c.JumpForce < 0:
		return fmt.Errorf("%w: jump force %v is negative", ErrInvalidConfig, c.JumpForce)
	case c.SlideSpeed < 0:
		return fmt.Errorf("%w: slide speed %v is negative", ErrInvalidConfig, c.SlideSpeed)
	}
	return nil
}
