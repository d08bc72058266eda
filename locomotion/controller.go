package locomotion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/common"
)

// Contacts answers overlap queries against the collision world.
type Contacts interface {
	// Overlap returns every shape within radius of point that passes filter.
	Overlap(point cp.Vector, radius float64, filter cp.ShapeFilter) []*cp.Shape
}

// Env carries the per-step physics environment.
type Env struct {
	Dt      float64
	Gravity cp.Vector
}

// Input is the intent for one fixed step. Move is already scaled by run
// speed and step duration.
type Input struct {
	Move   float64
	Crouch bool
	Jump   bool
	Slide  bool
}

// Controller drives a single character body. All methods must be called
// from the simulation goroutine.
type Controller struct {
	Emitter Emitter

	body     *cp.Body
	contacts Contacts
	cfg      Config
	env      Env
	state    State

	crouchCollider *cp.Shape
	crouchFilter   cp.ShapeFilter

	emitted Notifications
}

// New creates a controller for body. The initial position is captured from
// the body and used by CheckRespawn.
func New(body *cp.Body, contacts Contacts, cfg Config, env Env) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if contacts == nil {
		return nil, ErrNilContacts
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		body:     body,
		contacts: contacts,
		cfg:      cfg,
		env:      env,
		state:    newState(body.Position()),
	}, nil
}

// SetCrouchCollider registers a shape that stops colliding while crouched.
func (c *Controller) SetCrouchCollider(shape *cp.Shape) {
	c.crouchCollider = shape
	if shape != nil {
		c.crouchFilter = shape.Filter
	}
}

// SetConfig swaps tunables between steps. Runtime state is kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) SetEnv(env Env) {
	c.env = env
}

func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the runtime state.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Body() *cp.Body {
	return c.body
}

// ProbePoint returns the world position of a probe offset, mirrored by facing.
func (c *Controller) ProbePoint(offset cp.Vector) cp.Vector {
	p := c.body.Position()
	if !c.state.FacingRight {
		offset.X = -offset.X
	}
	return p.Add(offset)
}

// ResolveContacts recomputes grounded and on-wall from overlap queries. It
// must run before Move in the same fixed step.
func (c *Controller) ResolveContacts() {
	s := &c.state
	wasGrounded := s.Grounded
	s.Grounded = false
	s.OnWall = false

	for _, shape := range c.contacts.Overlap(c.ProbePoint(*c.cfg.GroundCheck), c.cfg.GroundRadius, c.cfg.GroundFilter) {
		if c.isSelf(shape) {
			continue
		}
		s.Grounded = true
	}
	if s.Grounded && !wasGrounded {
		c.notify(Notification{Kind: NotifyLanded})
	}

	for _, shape := range c.contacts.Overlap(c.ProbePoint(*c.cfg.WallCheck), c.cfg.GroundRadius, c.cfg.GroundFilter) {
		if c.isSelf(shape) {
			continue
		}
		s.OnWall = true
		s.WallJumping = false

		v := c.body.Velocity()
		v.Y -= v.Y * c.cfg.FallDecay
		c.body.SetVelocityVector(v)
	}
}

// Move applies one step of movement intent. Order matters: later stages
// can override the effect of earlier ones.
func (c *Controller) Move(move float64, crouch, jump, slide bool) {
	s := &c.state
	cfg := &c.cfg

	if v := c.body.Velocity(); v.Y < 0 {
		v.Y += c.env.Gravity.Y * (cfg.FallMultiplier - 1) * c.env.Dt
		c.body.SetVelocityVector(v)
	}

	// keep crouching under a low ceiling
	if !crouch && c.overlapsOther(c.ProbePoint(*cfg.CeilingCheck), cfg.CeilingRadius) {
		crouch = true
	}

	if s.Grounded {
		s.CanDoubleJump = true
	}

	if s.Grounded || cfg.AirControl {
		if crouch {
			if s.Crouching.Set(true) {
				c.notify(Notification{Kind: NotifyCrouch, Entering: true})
			}
			move *= cfg.CrouchSpeed
			c.setCrouchColliderEnabled(false)
		} else {
			c.setCrouchColliderEnabled(true)
			if s.Crouching.Set(false) {
				c.notify(Notification{Kind: NotifyCrouch, Entering: false})
			}
		}

		if slide && s.Grounded {
			if s.Sliding.Set(true) {
				c.notify(Notification{Kind: NotifySlide, Entering: true})
			}
			move *= cfg.SlideSpeed
		} else if s.Sliding.Set(false) {
			c.notify(Notification{Kind: NotifySlide, Entering: false})
		}

		v := c.body.Velocity()
		target := cp.Vector{X: move * cfg.SpeedScale, Y: v.Y}
		c.body.SetVelocityVector(common.SmoothDamp(v, target, &s.SmoothVelocity, cfg.MovementSmoothing, c.env.Dt))

		if move > 0 && !s.FacingRight && !s.OnWall {
			c.Flip()
		} else if move < 0 && s.FacingRight && !s.OnWall {
			c.Flip()
		}
	}

	switch {
	case s.Grounded && jump:
		s.Grounded = false
		c.body.ApplyImpulseAtLocalPoint(cp.Vector{Y: cfg.JumpForce}, cp.Vector{})
	case !s.Grounded && jump && s.CanDoubleJump:
		s.CanDoubleJump = false
		if v := c.body.Velocity(); v.Y < 0 {
			v.Y = 0
			c.body.SetVelocityVector(v)
		}
		c.body.ApplyForceAtLocalPoint(cp.Vector{Y: cfg.JumpForce}, cp.Vector{})
	case s.OnWall && jump && !s.WallJumping:
		s.WallJumping = true
		v := c.body.Velocity()
		v.X = 0
		v = v.Add(cp.Vector{X: -s.FacingDirection * cfg.WallJumpKick.X, Y: cfg.WallJumpKick.Y})
		c.body.SetVelocityVector(v)
		c.Flip()
	}
}

// Flip turns the character around and mirrors its horizontal scale.
func (c *Controller) Flip() {
	c.state.FacingRight = !c.state.FacingRight
	c.state.ScaleX *= -1
}

// CheckRespawn teleports the body back to its initial position once it falls
// below the respawn height. Velocity is left as is.
func (c *Controller) CheckRespawn() bool {
	if c.body.Position().Y >= c.cfg.RespawnY {
		return false
	}
	c.Respawn()
	return true
}

// Respawn teleports the body to its initial position unconditionally.
func (c *Controller) Respawn() {
	c.body.SetPosition(c.state.InitialPosition)
	c.notify(Notification{Kind: NotifyRespawn})
}

// UpdateFacing derives the facing direction. It runs at visual rate, so the
// physics step may read a value that is a few fixed steps old.
func (c *Controller) UpdateFacing() {
	if c.state.FacingRight {
		c.state.FacingDirection = 1
	} else {
		c.state.FacingDirection = -1
	}
}

func (c *Controller) isSelf(shape *cp.Shape) bool {
	return shape == nil || shape.Body() == c.body
}

func (c *Controller) overlapsOther(point cp.Vector, radius float64) bool {
	for _, shape := range c.contacts.Overlap(point, radius, c.cfg.GroundFilter) {
		if !c.isSelf(shape) {
			return true
		}
	}
	return false
}

func (c *Controller) setCrouchColliderEnabled(enabled bool) {
	if c.crouchCollider == nil {
		return
	}
	if enabled {
		c.crouchCollider.SetFilter(c.crouchFilter)
		return
	}
	c.crouchCollider.SetFilter(cp.ShapeFilter{})
}

func (c *Controller) notify(n Notification) {
	c.emitted = append(c.emitted, n)
	c.Emitter.Emit(n)
}

// Drain returns the notifications fired since the previous Drain.
func (c *Controller) Drain() Notifications {
	if len(c.emitted) == 0 {
		return nil
	}
	out := c.emitted
	c.emitted = nil
	return out
}

// AdvancePhysicsStep runs one fixed step: contact resolution, movement and
// the respawn guard, in that order. It returns the notifications fired.
func AdvancePhysicsStep(c *Controller, in Input) Notifications {
	c.ResolveContacts()
	c.Move(in.Move, in.Crouch, in.Jump, in.Slide)
	c.CheckRespawn()
	return c.Drain()
}

// AdvanceVisualStep runs the per-frame derivations.
func AdvanceVisualStep(c *Controller) {
	c.UpdateFacing()
}
