package controller

import "math"

// MotionState is the per-character state carried across frames.
type MotionState struct {
	HorizontalVelocity float64
	VerticalVelocity   float64

	IsGrounded  bool
	WasGrounded bool

	AirJumpCount int
	// CoyoteTimer is the clock stamp of the last Grounded->Airborne edge.
	CoyoteTimer float64
	// JumpBufferTimer is the clock stamp of the last unanswered mid-air jump request.
	JumpBufferTimer float64
}

// NewMotionState returns a state with no coyote window and no buffered jump.
func NewMotionState() MotionState {
	return MotionState{
		CoyoteTimer:     math.Inf(-1),
		JumpBufferTimer: math.Inf(-1),
	}
}
