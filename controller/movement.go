package controller

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/common"
)

// MovementIntegrator turns input and gravity into the frame velocity.
type MovementIntegrator struct {
	cfg MotionConfig
}

func NewMovementIntegrator(cfg MotionConfig) *MovementIntegrator {
	return &MovementIntegrator{cfg: cfg}
}

// SampleInput recomputes horizontal velocity. It only runs while grounded;
// airborne horizontal velocity keeps its last grounded value.
func (m *MovementIntegrator) SampleInput(s *MotionState, in InputSource) {
	if !s.IsGrounded || in == nil {
		return
	}
	speed := m.cfg.DefaultSpeed
	if m.cfg.SprintEnabled && in.SprintHeld() {
		speed = m.cfg.SprintSpeed
	}
	s.HorizontalVelocity = common.Clamp(in.Horizontal(), -1, 1) * speed
}

// ApplyCeiling stops upward motion against an obstruction without reversing it.
func (m *MovementIntegrator) ApplyCeiling(s *MotionState, up RayResult) {
	if up.Hit {
		s.VerticalVelocity = math.Min(0, s.VerticalVelocity)
	}
}

// ApplyGravity accelerates an airborne character down to the terminal speed.
func (m *MovementIntegrator) ApplyGravity(s *MotionState) {
	if s.IsGrounded {
		return
	}
	s.VerticalVelocity = math.Max(s.VerticalVelocity-m.cfg.Gravity, -m.cfg.MaxFallSpeed)
}

// Velocity composes the frame velocity vector.
func (m *MovementIntegrator) Velocity(s *MotionState) cp.Vector {
	return cp.Vector{X: s.HorizontalVelocity, Y: s.VerticalVelocity}
}

// Integrate advances a position by one fixed simulation step.
func (m *MovementIntegrator) Integrate(position, velocity cp.Vector, dt float64) cp.Vector {
	return position.Add(velocity.Mult(dt))
}
