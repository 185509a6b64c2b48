package controller

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/common"
)

// penetrationEpsilon ignores float noise left over from a previous correction.
const penetrationEpsilon = 1e-9

// CorrectionPolicy moves a position toward its overlap-free target.
type CorrectionPolicy interface {
	Approach(base, target cp.Vector, dt float64) cp.Vector
}

// InstantPolicy snaps to the target.
type InstantPolicy struct{}

func (InstantPolicy) Approach(_, target cp.Vector, _ float64) cp.Vector {
	return target
}

// InterpolatedPolicy smooths the correction exponentially at Rate per second.
// It never passes the target.
type InterpolatedPolicy struct {
	Rate float64
}

func (p InterpolatedPolicy) Approach(base, target cp.Vector, dt float64) cp.Vector {
	f := common.SmoothingFactor(p.Rate, dt)
	return base.Add(target.Sub(base).Mult(f))
}

// NewCorrectionPolicy picks the strategy for a correction mode.
func NewCorrectionPolicy(mode CorrectionMode, rate float64) (CorrectionPolicy, error) {
	switch mode {
	case CorrectionInstant:
		return InstantPolicy{}, nil
	case CorrectionInterpolated:
		if rate <= 0 {
			return nil, fmt.Errorf("%w: interpolated correction needs a positive rate, got %g", ErrInvalidConfig, rate)
		}
		return InterpolatedPolicy{Rate: rate}, nil
	}
	return nil, fmt.Errorf("%w: unknown correction mode %q", ErrInvalidConfig, mode)
}

// correctionOrder resolves the vertical axis first, then the horizontal one.
// Within an axis the first ray that penetrates wins, which gives the left ray
// priority when the character is wedged between two walls.
var correctionOrder = [2][2]RayID{
	{RayDown, RayUp},
	{RayLeft, RayRight},
}

// OverlapResolver pushes the character out of solid geometry, one pass per
// axis, using this frame's probe results.
type OverlapResolver struct {
	bounds    Bounds
	secondary bool
	policy    CorrectionPolicy
}

func NewOverlapResolver(bounds Bounds, secondary bool, policy CorrectionPolicy) *OverlapResolver {
	if policy == nil {
		policy = InstantPolicy{}
	}
	return &OverlapResolver{bounds: bounds, secondary: secondary, policy: policy}
}

// Correction returns the full push-out vector for the probe results.
func (r *OverlapResolver) Correction(p *ProbeSet) cp.Vector {
	var c cp.Vector
	for _, axis := range correctionOrder {
		for _, id := range axis {
			if d := r.Penetration(p, id); d > 0 {
				c = c.Add(rayLayout[id].dir.Mult(-d))
				break
			}
		}
	}
	return c
}

// Penetration returns the overlap depth behind the primary ray id. A primary
// miss falls back to the deepest flanking corner ray when secondary
// correction is on; a primary hit always takes precedence.
func (r *OverlapResolver) Penetration(p *ProbeSet, primary RayID) float64 {
	half := r.bounds.HalfExtent(primary)
	if main := p[primary]; main.Hit {
		return depth(half, main.Distance)
	}
	if !r.secondary {
		return 0
	}
	deepest := 0.0
	for _, id := range cornerRays[primary] {
		if corner := p[id]; corner.Hit {
			deepest = math.Max(deepest, depth(half, corner.Distance))
		}
	}
	return deepest
}

// Resolve returns the corrected position for an anchor at base.
func (r *OverlapResolver) Resolve(base cp.Vector, p *ProbeSet, dt float64) cp.Vector {
	c := r.Correction(p)
	if c.X == 0 && c.Y == 0 {
		return base
	}
	return r.policy.Approach(base, base.Add(c), dt)
}

func depth(half, distance float64) float64 {
	d := half - distance
	if d <= penetrationEpsilon {
		return 0
	}
	return d
}
