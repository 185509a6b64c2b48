package controller

import "github.com/jakecoffman/cp"

// RayID identifies one ray of the probe layout.
type RayID int

const (
	RayUp RayID = iota
	RayDown
	RayLeft
	RayRight

	RayUpLeft
	RayUpRight
	RayDownLeft
	RayDownRight
	RayLeftUpper
	RayLeftLower
	RayRightUpper
	RayRightLower

	RayCount
)

var rayNames = [RayCount]string{
	RayUp:         "up",
	RayDown:       "down",
	RayLeft:       "left",
	RayRight:      "right",
	RayUpLeft:     "up-left",
	RayUpRight:    "up-right",
	RayDownLeft:   "down-left",
	RayDownRight:  "down-right",
	RayLeftUpper:  "left-upper",
	RayLeftLower:  "left-lower",
	RayRightUpper: "right-upper",
	RayRightLower: "right-lower",
}

func (id RayID) String() string {
	if id < 0 || id >= RayCount {
		return "invalid"
	}
	return rayNames[id]
}

// Primary reports whether id is one of the four center rays.
func (id RayID) Primary() bool {
	return id >= RayUp && id <= RayRight
}

var (
	dirUp    = cp.Vector{X: 0, Y: 1}
	dirDown  = cp.Vector{X: 0, Y: -1}
	dirLeft  = cp.Vector{X: -1, Y: 0}
	dirRight = cp.Vector{X: 1, Y: 0}
)

type rayDef struct {
	dir cp.Vector
	// side shifts the origin along the perpendicular axis by half of the
	// perpendicular half-extent: -1 toward left/down, +1 toward right/up.
	side    float64
	primary RayID
}

var rayLayout = [RayCount]rayDef{
	RayUp:    {dir: dirUp, primary: RayUp},
	RayDown:  {dir: dirDown, primary: RayDown},
	RayLeft:  {dir: dirLeft, primary: RayLeft},
	RayRight: {dir: dirRight, primary: RayRight},

	RayUpLeft:     {dir: dirUp, side: -1, primary: RayUp},
	RayUpRight:    {dir: dirUp, side: 1, primary: RayUp},
	RayDownLeft:   {dir: dirDown, side: -1, primary: RayDown},
	RayDownRight:  {dir: dirDown, side: 1, primary: RayDown},
	RayLeftUpper:  {dir: dirLeft, side: 1, primary: RayLeft},
	RayLeftLower:  {dir: dirLeft, side: -1, primary: RayLeft},
	RayRightUpper: {dir: dirRight, side: 1, primary: RayRight},
	RayRightLower: {dir: dirRight, side: -1, primary: RayRight},
}

// cornerRays lists the two corner rays supporting each primary ray.
var cornerRays = [4][2]RayID{
	RayUp:    {RayUpLeft, RayUpRight},
	RayDown:  {RayDownLeft, RayDownRight},
	RayLeft:  {RayLeftUpper, RayLeftLower},
	RayRight: {RayRightUpper, RayRightLower},
}

func (d rayDef) vertical() bool {
	return d.dir.X == 0
}

// HalfExtent returns the bounds' half-extent along the axis ray id travels.
func (b Bounds) HalfExtent(id RayID) float64 {
	if rayLayout[id].vertical() {
		return b.Extents.Y
	}
	return b.Extents.X
}

// Segment is one cast ray, kept for debug drawing.
type Segment struct {
	Origin    cp.Vector
	Direction cp.Vector
	Length    float64
}

func (s Segment) End() cp.Vector {
	return s.Origin.Add(s.Direction.Mult(s.Length))
}

// RaySegment returns the ray id cast from an anchor at position.
func (b Bounds) RaySegment(id RayID, position cp.Vector, skin float64) Segment {
	def := rayLayout[id]
	center := position.Add(b.Center)
	origin := center
	if def.vertical() {
		origin.X += def.side * b.Extents.X / 2
	} else {
		origin.Y += def.side * b.Extents.Y / 2
	}
	return Segment{
		Origin:    origin,
		Direction: def.dir,
		Length:    b.HalfExtent(id) + skin,
	}
}

// ProbeSet holds this frame's result for every ray, indexed by RayID.
type ProbeSet [RayCount]RayResult

func (p *ProbeSet) Get(id RayID) RayResult {
	return p[id]
}

// SideWall reports the primary side ray touching a climbable wall. When both
// sides do, the left ray wins.
func (p *ProbeSet) SideWall() (RayID, bool) {
	for _, id := range [...]RayID{RayLeft, RayRight} {
		if r := p[id]; r.Hit && r.Tag == SurfaceClimbableWall {
			return id, true
		}
	}
	return 0, false
}

// CollisionProbe casts the fixed ray layout against the static world.
type CollisionProbe struct {
	caster   RayCaster
	skin     float64
	segments [RayCount]Segment
}

func NewCollisionProbe(caster RayCaster, skin float64) *CollisionProbe {
	return &CollisionProbe{caster: caster, skin: skin}
}

// Probe issues one query per ray. The down ray is restricted to groundMask,
// every other ray to wallMask.
func (p *CollisionProbe) Probe(position cp.Vector, bounds Bounds, groundMask, wallMask Mask) ProbeSet {
	var set ProbeSet
	for id := RayID(0); id < RayCount; id++ {
		seg := bounds.RaySegment(id, position, p.skin)
		p.segments[id] = seg

		mask := wallMask
		if id == RayDown {
			mask = groundMask
		}
		set[id] = p.caster.Cast(seg.Origin, seg.Direction, seg.Length, mask)
	}
	return set
}

// Segments returns the rays cast by the last Probe call.
func (p *CollisionProbe) Segments() [RayCount]Segment {
	return p.segments
}
