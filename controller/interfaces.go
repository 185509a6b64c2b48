package controller

import "github.com/jakecoffman/cp"

// Mask selects which world layers a ray query may hit.
type Mask uint

// SurfaceTag classifies the surface a ray hit.
type SurfaceTag string

const (
	SurfaceSolid         SurfaceTag = "solid"
	SurfaceClimbableWall SurfaceTag = "climbable_wall"
)

// RayResult is the nearest hit of a single ray query.
type RayResult struct {
	Hit      bool
	Distance float64
	Normal   cp.Vector
	Tag      SurfaceTag
}

// RayCaster answers ray queries against static geometry. A miss is reported
// with Hit=false, never as an error.
type RayCaster interface {
	Cast(origin, direction cp.Vector, maxDistance float64, mask Mask) RayResult
}

// PositionStore holds the anchor position of the character.
type PositionStore interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
}

// InputSource reports per-frame player intent.
type InputSource interface {
	// JumpPressed is true only on the frame the jump key went down.
	JumpPressed() bool
	// Horizontal is the movement axis in [-1, 1].
	Horizontal() float64
	SprintHeld() bool
}

// Clock supplies the two time bases of the host loop.
type Clock interface {
	// Now is the time in seconds at the start of the current frame.
	Now() float64
	FrameDelta() float64
	FixedDelta() float64
}

// Transform is the default PositionStore.
type Transform struct {
	X float64
	Y float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}
