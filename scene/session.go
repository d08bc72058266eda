package scene

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wallkick/common"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/ecs/entity"
	"github.com/milk9111/wallkick/ecs/system"
	"github.com/milk9111/wallkick/levels"
	"github.com/milk9111/wallkick/locomotion"
	"github.com/milk9111/wallkick/prefabs"
)

var ErrNoPlayer = errors.New("scene: no player")

type Options struct {
	Level      string
	AirControl bool
	// Audio synthesizes cue clips and adds the audio system.
	Audio bool
	// Hooks runs the player's tengo hook script.
	Hooks bool
	// Watch reloads prefabs and scripts when they change on disk.
	Watch bool
	// Sampler replaces device input. Nil reads the keyboard and gamepad.
	Sampler func() system.InputSample
}

// Session owns a world and the two schedulers that drive it: a fixed-rate
// one for locomotion and physics, and a per-frame one for presentation.
type Session struct {
	World  *ecs.World
	Level  *levels.Level
	Player ecs.Entity

	opts    Options
	physics *system.PhysicsSystem
	input   *system.InputSystem
	hooks   *system.HookScriptSystem
	fixed   *ecs.Scheduler
	visual  *ecs.Scheduler
	clock   *ecs.FixedStep
	watcher *prefabs.Watcher

	steps  int
	events []ecs.Event
}

// New loads the level, player and camera prefabs named by opts.
func New(opts Options) (*Session, error) {
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	return NewWithSpecs(lvl, playerSpec, cameraSpec, opts)
}

// NewWithSpecs builds a session from already loaded data.
func NewWithSpecs(lvl *levels.Level, playerSpec *prefabs.PlayerSpec, cameraSpec *prefabs.CameraSpec, opts Options) (*Session, error) {
	if lvl == nil {
		return nil, fmt.Errorf("scene: nil level")
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return nil, err
	}
	player, err := entity.NewPlayer(w, playerSpec, entity.PlayerOptions{
		X:          lvl.Spawn.X,
		Y:          lvl.Spawn.Y,
		KillY:      lvl.KillY,
		AirControl: opts.AirControl,
		Audio:      opts.Audio,
	})
	if err != nil {
		return nil, err
	}
	if _, err := entity.NewCamera(w, cameraSpec, lvl.Spawn.X, lvl.Spawn.Y); err != nil {
		return nil, err
	}

	step := common.FixedStep
	gravity := cp.Vector{Y: lvl.Gravity}
	physics := system.NewPhysicsSystem(gravity, step)
	physics.Sync(w)
	if err := system.BindControllers(w, physics, locomotion.Env{Dt: step, Gravity: gravity}); err != nil {
		return nil, fmt.Errorf("scene: bind controllers: %w", err)
	}

	s := &Session{
		World:   w,
		Level:   lvl,
		Player:  player,
		opts:    opts,
		physics: physics,
		clock:   ecs.NewFixedStep(step, 5),
	}

	if opts.Sampler != nil {
		s.input = system.NewInputSystemWithSampler(opts.Sampler)
	} else {
		s.input = system.NewInputSystem()
	}

	s.fixed = ecs.NewScheduler(
		system.NewRespawnSystem(),
		system.NewLocomotionSystem(step),
		physics,
	)

	s.visual = ecs.NewScheduler(system.NewFacingSystem())
	if opts.Hooks {
		s.hooks = system.NewHookScriptSystem()
		s.visual.Add(s.hooks)
	}
	s.visual.Add(system.NewAnimationSystem())
	if opts.Audio {
		s.visual.Add(system.NewAudioSystem())
	}
	s.visual.Add(system.NewCameraSystem())

	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			log.Printf("scene: file watching disabled: %v", err)
		} else {
			s.watcher = watcher
		}
	}

	return s, nil
}

// Frame advances by dt seconds of wall time: input is sampled, due fixed
// steps run, then the presentation systems see every event the steps
// produced. Events are cleared before returning and kept for Events.
func (s *Session) Frame(dt float64) int {
	s.pollChanges()
	s.input.Update(s.World)
	n := s.clock.Run(s.World, s.fixed, dt)
	s.steps += n
	s.finishFrame()
	return n
}

// Step runs exactly one fixed step followed by one presentation frame,
// independent of wall time.
func (s *Session) Step() {
	s.pollChanges()
	s.input.Update(s.World)
	s.fixed.Update(s.World)
	s.steps++
	s.finishFrame()
}

func (s *Session) finishFrame() {
	s.visual.Update(s.World)
	s.events = append(s.events[:0], s.World.Events().Items()...)
	s.World.Events().Clear()
}

// Events returns the events of the last frame.
func (s *Session) Events() []ecs.Event {
	return s.events
}

// Steps is the number of fixed steps run so far.
func (s *Session) Steps() int {
	return s.steps
}

// Alpha is the fraction of a fixed step not yet simulated.
func (s *Session) Alpha() float64 {
	return s.clock.Alpha()
}

func (s *Session) Space() *cp.Space {
	return s.physics.Space()
}

// Controller returns the player's locomotion controller.
func (s *Session) Controller() (*locomotion.Controller, error) {
	ch, ok := ecs.Get(s.World, s.Player, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return nil, ErrNoPlayer
	}
	return ch.Controller, nil
}

// RequestRespawn queues a respawn for the next fixed step.
func (s *Session) RequestRespawn() error {
	if !s.World.IsAlive(s.Player) {
		return ErrNoPlayer
	}
	return ecs.Add(s.World, s.Player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
}

func (s *Session) AirControl() bool {
	c, err := s.Controller()
	if err != nil {
		return false
	}
	return c.Config().AirControl
}

// SetAirControl toggles air control without touching other tunables.
func (s *Session) SetAirControl(on bool) error {
	c, err := s.Controller()
	if err != nil {
		return err
	}
	cfg := c.Config()
	cfg.AirControl = on
	if err := c.SetConfig(cfg); err != nil {
		return err
	}
	s.opts.AirControl = on
	return nil
}

// ReloadPlayerSpec re-reads player.yaml and applies its tunables to the live
// controller. The level's kill height and the current air control setting
// are kept.
func (s *Session) ReloadPlayerSpec() error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	cfg, err := spec.Controller.Config()
	if err != nil {
		return err
	}
	if s.Level.KillY != 0 {
		cfg.RespawnY = s.Level.KillY
	}

	ch, ok := ecs.Get(s.World, s.Player, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return ErrNoPlayer
	}
	cfg.AirControl = ch.Controller.Config().AirControl
	if err := ch.Controller.SetConfig(cfg); err != nil {
		return err
	}
	ch.Config = cfg
	ch.RunSpeed = spec.RunSpeed
	return nil
}

func (s *Session) pollChanges() {
	if s.watcher == nil {
		return
	}
	for _, change := range s.watcher.Poll() {
		switch change.Kind {
		case prefabs.ChangeSpec:
			if !prefabs.IsPlayerSpec(change.Path) {
				continue
			}
			if err := s.ReloadPlayerSpec(); err != nil {
				log.Printf("scene: reload %s: %v", change.Path, err)
				continue
			}
			log.Printf("scene: reloaded %s", change.Path)
		case prefabs.ChangeScript:
			s.hooks.Invalidate(change.Path)
			log.Printf("scene: reloaded %s", change.Path)
		case prefabs.ChangeLevel:
			log.Printf("scene: %s changed, restart to apply", change.Path)
		}
	}
}

func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
