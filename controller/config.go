package controller

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrInvalidConfig     = errors.New("controller: invalid config")
	ErrMissingDependency = errors.New("controller: missing dependency")
)

// Bounds is the character's axis-aligned box relative to its anchor point.
type Bounds struct {
	Center  cp.Vector
	Extents cp.Vector // half-extents
}

func (b Bounds) Validate() error {
	if b.Extents.X <= 0 || b.Extents.Y <= 0 {
		return fmt.Errorf("%w: bounds half-extents must be positive, got (%g, %g)", ErrInvalidConfig, b.Extents.X, b.Extents.Y)
	}
	return nil
}

// CorrectionMode selects how overlap corrections reach their target.
type CorrectionMode string

const (
	CorrectionInstant      CorrectionMode = "instant"
	CorrectionInterpolated CorrectionMode = "interpolated"
)

type MotionConfig struct {
	DefaultSpeed  float64
	SprintSpeed   float64
	SprintEnabled bool

	// Gravity is subtracted from the vertical velocity once per frame while airborne.
	Gravity      float64
	MaxFallSpeed float64

	// SkinMargin extends the primary and corner rays past the bounds.
	SkinMargin          float64
	Correction          CorrectionMode
	CorrectionRate      float64
	SecondaryCorrection bool

	GroundMask Mask
	WallMask   Mask
}

type JumpConfig struct {
	JumpStrength       float64
	AirJumpStrength    float64
	AirJumps           int
	WallBounceStrength float64
	WallClimbEnabled   bool

	CoyoteDuration     float64
	JumpBufferDuration float64
}

// Config is the full, read-only tuning of one controller.
type Config struct {
	Bounds Bounds
	Motion MotionConfig
	Jump   JumpConfig
}

const (
	DefaultCoyoteDuration     = 0.12
	DefaultJumpBufferDuration = 0.1
	DefaultSkinMargin         = 0.1
)

// DefaultConfig returns the stock tuning. The masks are left as "all layers"
// so the config validates without a world; callers normally narrow them.
func DefaultConfig() Config {
	return Config{
		Bounds: Bounds{
			Extents: cp.Vector{X: 0.5, Y: 1},
		},
		Motion: MotionConfig{
			DefaultSpeed:        8,
			SprintSpeed:         14,
			SprintEnabled:       true,
			Gravity:             1,
			MaxFallSpeed:        60,
			SkinMargin:          DefaultSkinMargin,
			Correction:          CorrectionInstant,
			CorrectionRate:      20,
			SecondaryCorrection: true,
			GroundMask:          ^Mask(0),
			WallMask:            ^Mask(0),
		},
		Jump: JumpConfig{
			JumpStrength:       45,
			AirJumpStrength:    40,
			AirJumps:           1,
			WallBounceStrength: 30,
			WallClimbEnabled:   true,
			CoyoteDuration:     DefaultCoyoteDuration,
			JumpBufferDuration: DefaultJumpBufferDuration,
		},
	}
}

// Validate reports the first misconfiguration found.
func (c Config) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if err := c.Motion.validate(); err != nil {
		return err
	}
	return c.Jump.validate()
}

func (m MotionConfig) validate() error {
	switch {
	case m.DefaultSpeed < 0 || m.SprintSpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	case m.Gravity < 0:
		return fmt.Errorf("%w: gravity must not be negative, got %g", ErrInvalidConfig, m.Gravity)
	case m.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: max fall speed must be positive, got %g", ErrInvalidConfig, m.MaxFallSpeed)
	case m.SkinMargin < 0:
		return fmt.Errorf("%w: skin margin must not be negative, got %g", ErrInvalidConfig, m.SkinMargin)
	case m.GroundMask == 0 || m.WallMask == 0:
		return fmt.Errorf("%w: ground and wall masks must select at least one layer", ErrInvalidConfig)
	}

	switch m.Correction {
	case CorrectionInstant:
	case CorrectionInterpolated:
		if m.CorrectionRate <= 0 {
			return fmt.Errorf("%w: interpolated correction needs a positive rate, got %g", ErrInvalidConfig, m.CorrectionRate)
		}
	default:
		return fmt.Errorf("%w: unknown correction mode %q", ErrInvalidConfig, m.Correction)
	}
	return nil
}

func (j JumpConfig) validate() error {
	switch {
	case j.CoyoteDuration < 0:
		return fmt.Errorf("%w: coyote duration must not be negative, got %g", ErrInvalidConfig, j.CoyoteDuration)
	case j.JumpBufferDuration < 0:
		return fmt.Errorf("%w: jump buffer duration must not be negative, got %g", ErrInvalidConfig, j.JumpBufferDuration)
	case j.AirJumps < 0:
		return fmt.Errorf("%w: air jump budget must not be negative, got %d", ErrInvalidConfig, j.AirJumps)
	case j.JumpStrength < 0 || j.AirJumpStrength < 0 || j.WallBounceStrength < 0:
		return fmt.Errorf("%w: jump strengths must not be negative", ErrInvalidConfig)
	}
	return nil
}
