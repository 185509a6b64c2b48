package controller

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
)

// Deps are the collaborators a Controller consumes.
type Deps struct {
	Caster   RayCaster
	Position PositionStore
	Input    InputSource
	Clock    Clock
}

func (d Deps) validate() error {
	switch {
	case d.Caster == nil:
		return fmt.Errorf("%w: ray caster", ErrMissingDependency)
	case d.Position == nil:
		return fmt.Errorf("%w: position store", ErrMissingDependency)
	case d.Input == nil:
		return fmt.Errorf("%w: input source", ErrMissingDependency)
	case d.Clock == nil:
		return fmt.Errorf("%w: clock", ErrMissingDependency)
	}
	return nil
}

type Option func(*Controller)

// WithLogger logs construction and state transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// Controller runs the per-frame sequence for one character.
type Controller struct {
	cfg  Config
	deps Deps

	probe    *CollisionProbe
	tracker  GroundednessTracker
	resolver *OverlapResolver
	jumps    *JumpController
	movement *MovementIntegrator

	state    MotionState
	probes   ProbeSet
	velocity cp.Vector
	events   EventQueue
	logger   *log.Logger
}

// New validates cfg and deps and returns a controller ready for Update.
func New(cfg Config, deps Deps, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}
	policy, err := NewCorrectionPolicy(cfg.Motion.Correction, cfg.Motion.CorrectionRate)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:      cfg,
		deps:     deps,
		probe:    NewCollisionProbe(deps.Caster, cfg.Motion.SkinMargin),
		resolver: NewOverlapResolver(cfg.Bounds, cfg.Motion.SecondaryCorrection, policy),
		jumps:    NewJumpController(cfg.Jump),
		movement: NewMovementIntegrator(cfg.Motion),
		state:    NewMotionState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logf("created bounds=%v correction=%s air_jumps=%d", cfg.Bounds.Extents, cfg.Motion.Correction, cfg.Jump.AirJumps)
	return c, nil
}

// Update runs the variable-rate phase: probe, overlap correction,
// groundedness, input and jump handling, and velocity composition.
func (c *Controller) Update() {
	now := c.deps.Clock.Now()
	dt := c.deps.Clock.FrameDelta()
	s := &c.state

	base := c.deps.Position.Position()
	c.probes = c.probe.Probe(base, c.cfg.Bounds, c.cfg.Motion.GroundMask, c.cfg.Motion.WallMask)
	if corrected := c.resolver.Resolve(base, &c.probes, dt); corrected != base {
		c.deps.Position.SetPosition(corrected)
	}

	switch c.tracker.Update(s, c.probes[RayDown], now) {
	case TransitionLanded:
		c.emit(Event{Type: EventGrounded, Time: now})
	case TransitionLeftGround:
		c.emit(Event{Type: EventAirborne, Time: now})
	}

	pressed := c.deps.Input.JumpPressed()
	if s.IsGrounded {
		c.movement.SampleInput(s, c.deps.Input)
		c.tracker.ClampGrounded(s)
	} else {
		c.movement.ApplyCeiling(s, c.probes[RayUp])
		c.movement.ApplyGravity(s)
	}
	c.jump(pressed, now)

	c.velocity = c.movement.Velocity(s)
	s.WasGrounded = s.IsGrounded
}

func (c *Controller) jump(pressed bool, now float64) {
	var normal cp.Vector
	side, onWall := c.probes.SideWall()
	if onWall {
		normal = c.probes[side].Normal
	}

	d, bounced := c.jumps.Evaluate(&c.state, pressed, normal, onWall, now)
	switch d.Action {
	case ActionJump:
		c.emit(Event{Type: EventJumpFired, Time: now, Jump: d.Kind, WallBounce: bounced})
	case ActionBuffer:
		c.logf("jump buffered at %.3f", now)
	}
}

// FixedUpdate runs the fixed-rate phase: it commits the velocity computed by
// the last Update without recomputing it.
func (c *Controller) FixedUpdate() {
	if c.velocity.X == 0 && c.velocity.Y == 0 {
		return
	}
	p := c.movement.Integrate(c.deps.Position.Position(), c.velocity, c.deps.Clock.FixedDelta())
	c.deps.Position.SetPosition(p)
}

// Teleport moves the anchor and clears velocity and timers. The air-jump
// count is kept; the next landing resets it.
func (c *Controller) Teleport(p cp.Vector) {
	c.deps.Position.SetPosition(p)
	airJumps := c.state.AirJumpCount
	c.state = NewMotionState()
	c.state.AirJumpCount = airJumps
	c.velocity = cp.Vector{}
	c.probes = ProbeSet{}
}

func (c *Controller) State() MotionState {
	return c.state
}

func (c *Controller) Velocity() cp.Vector {
	return c.velocity
}

func (c *Controller) Probes() ProbeSet {
	return c.probes
}

// Segments returns the rays cast during the last Update.
func (c *Controller) Segments() [RayCount]Segment {
	return c.probe.Segments()
}

func (c *Controller) Position() cp.Vector {
	return c.deps.Position.Position()
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) Events() *EventQueue {
	return &c.events
}

func (c *Controller) emit(evt Event) {
	c.events.Push(evt)
	if evt.Type == EventJumpFired {
		c.logf("%s jump=%s wall_bounce=%t at %.3f", evt.Type, evt.Jump, evt.WallBounce, evt.Time)
		return
	}
	c.logf("%s at %.3f", evt.Type, evt.Time)
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Printf("controller: "+format, args...)
}
