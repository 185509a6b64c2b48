package controller

// Transition is the groundedness edge observed in one frame.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionLanded
	TransitionLeftGround
)

func (t Transition) String() string {
	switch t {
	case TransitionLanded:
		return "landed"
	case TransitionLeftGround:
		return "left-ground"
	default:
		return "none"
	}
}

// GroundednessTracker derives Grounded/Airborne from the down ray.
type GroundednessTracker struct{}

// Update sets IsGrounded from the down ray and applies the edge side effects:
// leaving the ground stamps the coyote timer, landing resets the air jumps.
// WasGrounded is left for the caller to persist at the end of the frame.
func (GroundednessTracker) Update(s *MotionState, down RayResult, now float64) Transition {
	s.IsGrounded = down.Hit

	switch {
	case s.IsGrounded && !s.WasGrounded:
		s.AirJumpCount = 0
		return TransitionLanded
	case !s.IsGrounded && s.WasGrounded:
		s.CoyoteTimer = now
		return TransitionLeftGround
	}
	return TransitionNone
}

// ClampGrounded drops residual fall velocity while standing.
func (GroundednessTracker) ClampGrounded(s *MotionState) {
	if s.IsGrounded && s.VerticalVelocity < 0 {
		s.VerticalVelocity = 0
	}
}

// InCoyoteWindow reports whether a jump at now still counts as a ground jump.
func (GroundednessTracker) InCoyoteWindow(s *MotionState, now, duration float64) bool {
	return !s.IsGrounded && now <= s.CoyoteTimer+duration
}
