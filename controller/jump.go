package controller

import (
	"math"

	"github.com/jakecoffman/cp"
)

// JumpKind names the rule that produced a jump.
type JumpKind int

const (
	JumpNone JumpKind = iota
	JumpGround
	JumpBuffered
	JumpCoyote
	JumpAir
)

func (k JumpKind) String() string {
	switch k {
	case JumpGround:
		return "ground"
	case JumpBuffered:
		return "buffered"
	case JumpCoyote:
		return "coyote"
	case JumpAir:
		return "air"
	default:
		return "none"
	}
}

// Air reports whether the jump spends the air-jump budget.
func (k JumpKind) Air() bool {
	return k == JumpAir
}

type JumpAction int

const (
	ActionNone JumpAction = iota
	ActionJump
	// ActionBuffer remembers the request so it fires on landing.
	ActionBuffer
)

// JumpDecision is the outcome of one rule evaluation.
type JumpDecision struct {
	Rule   string
	Action JumpAction
	Kind   JumpKind
}

type jumpContext struct {
	state   *MotionState
	cfg     JumpConfig
	pressed bool
	now     float64
}

func (c jumpContext) buffered() bool {
	return c.now < c.state.JumpBufferTimer+c.cfg.JumpBufferDuration
}

type jumpRule struct {
	name   string
	action JumpAction
	match  func(c jumpContext) (JumpKind, bool)
}

// jumpRules are evaluated in order; the first match wins.
var jumpRules = []jumpRule{
	{
		name:   "ground",
		action: ActionJump,
		match: func(c jumpContext) (JumpKind, bool) {
			if !c.state.IsGrounded {
				return JumpNone, false
			}
			if c.pressed {
				return JumpGround, true
			}
			if c.buffered() {
				return JumpBuffered, true
			}
			return JumpNone, false
		},
	},
	{
		name:   "coyote",
		action: ActionJump,
		match: func(c jumpContext) (JumpKind, bool) {
			ok := c.pressed && GroundednessTracker{}.InCoyoteWindow(c.state, c.now, c.cfg.CoyoteDuration)
			return JumpCoyote, ok
		},
	},
	{
		name:   "air",
		action: ActionJump,
		match: func(c jumpContext) (JumpKind, bool) {
			ok := c.pressed && !c.state.IsGrounded && c.state.AirJumpCount < c.cfg.AirJumps
			return JumpAir, ok
		},
	},
	{
		name:   "buffer",
		action: ActionBuffer,
		match: func(c jumpContext) (JumpKind, bool) {
			return JumpNone, c.pressed && !c.state.IsGrounded
		},
	},
}

// JumpController decides whether and how a jump fires.
type JumpController struct {
	cfg JumpConfig
}

func NewJumpController(cfg JumpConfig) *JumpController {
	return &JumpController{cfg: cfg}
}

// Decide evaluates the rule table without touching the state.
func (j *JumpController) Decide(s *MotionState, pressed bool, now float64) JumpDecision {
	ctx := jumpContext{state: s, cfg: j.cfg, pressed: pressed, now: now}
	for _, rule := range jumpRules {
		if kind, ok := rule.match(ctx); ok {
			return JumpDecision{Rule: rule.name, Action: rule.action, Kind: kind}
		}
	}
	return JumpDecision{}
}

// Apply carries out a decision. wall is the contact normal of a climbable
// side wall, valid when onWall is set. It reports whether the jump became a
// wall-bounce.
func (j *JumpController) Apply(s *MotionState, d JumpDecision, wall cp.Vector, onWall bool, now float64) bool {
	switch d.Action {
	case ActionBuffer:
		s.JumpBufferTimer = now
		return false
	case ActionJump:
	default:
		return false
	}

	if d.Kind.Air() {
		s.AirJumpCount++
	} else {
		s.JumpBufferTimer = math.Inf(-1)
	}

	if onWall && j.cfg.WallClimbEnabled {
		// The bounce replaces both axes, discarding this frame's input.
		v := wall.Mult(j.cfg.WallBounceStrength)
		s.HorizontalVelocity = v.X
		s.VerticalVelocity = v.Y
		return true
	}

	if d.Kind.Air() {
		s.VerticalVelocity = j.cfg.AirJumpStrength
	} else {
		s.VerticalVelocity = j.cfg.JumpStrength
	}
	return false
}

// Evaluate decides and applies in one step.
func (j *JumpController) Evaluate(s *MotionState, pressed bool, wall cp.Vector, onWall bool, now float64) (JumpDecision, bool) {
	d := j.Decide(s, pressed, now)
	bounced := j.Apply(s, d, wall, onWall, now)
	return d, bounced
}
