package controller

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

type box struct {
	bb    cp.BB
	tag   SurfaceTag
	layer Mask
}

func solid(l, b, r, t float64) box {
	return box{bb: cp.BB{L: l, B: b, R: r, T: t}, tag: SurfaceSolid, layer: 1}
}

func climbable(l, b, r, t float64) box {
	return box{bb: cp.BB{L: l, B: b, R: r, T: t}, tag: SurfaceClimbableWall, layer: 1}
}

// boxWorld is a slab-test RayCaster over axis-aligned boxes. Like the
// chipmunk poly query, a ray that starts inside a box does not report it.
type boxWorld struct {
	boxes []box
	casts int
}

func (w *boxWorld) Cast(origin, dir cp.Vector, maxDistance float64, mask Mask) RayResult {
	w.casts++
	best := RayResult{Distance: math.Inf(1)}
	for _, b := range w.boxes {
		if b.layer&mask == 0 {
			continue
		}
		t, n, ok := slab(b.bb, origin, dir)
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		best = RayResult{Hit: true, Distance: t, Normal: n, Tag: b.tag}
	}
	if !best.Hit {
		return RayResult{}
	}
	return best
}

func slab(bb cp.BB, o, d cp.Vector) (float64, cp.Vector, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	var normal cp.Vector
	axes := [2]struct{ o, d, lo, hi float64 }{
		{o.X, d.X, bb.L, bb.R},
		{o.Y, d.Y, bb.B, bb.T},
	}
	for i, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return 0, cp.Vector{}, false
			}
			continue
		}
		t1, t2 := (a.lo-a.o)/a.d, (a.hi-a.o)/a.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			normal = cp.Vector{}
			if i == 0 {
				normal.X = -math.Copysign(1, a.d)
			} else {
				normal.Y = -math.Copysign(1, a.d)
			}
		}
		tmax = math.Min(tmax, t2)
	}
	if tmin > tmax || tmin < 0 {
		return 0, cp.Vector{}, false
	}
	return tmin, normal, true
}

type fakeInput struct {
	jump       bool
	horizontal float64
	sprint     bool
}

func (f *fakeInput) JumpPressed() bool   { return f.jump }
func (f *fakeInput) Horizontal() float64 { return f.horizontal }
func (f *fakeInput) SprintHeld() bool    { return f.sprint }

type fakeClock struct {
	now   float64
	frame float64
	fixed float64
}

func (c *fakeClock) Now() float64        { return c.now }
func (c *fakeClock) FrameDelta() float64 { return c.frame }
func (c *fakeClock) FixedDelta() float64 { return c.fixed }

type rig struct {
	world *boxWorld
	pos   *Transform
	in    *fakeInput
	clock *fakeClock
	c     *Controller
}

func newRig(t *testing.T, cfg Config, start cp.Vector, boxes ...box) *rig {
	t.Helper()
	r := &rig{
		world: &boxWorld{boxes: boxes},
		pos:   &Transform{X: start.X, Y: start.Y},
		in:    &fakeInput{},
		clock: &fakeClock{now: 1, frame: 1.0 / 60, fixed: 1.0 / 60},
	}
	c, err := New(cfg, Deps{Caster: r.world, Position: r.pos, Input: r.in, Clock: r.clock})
	require.NoError(t, err)
	r.c = c
	return r
}

// update runs the variable-rate phase only.
func (r *rig) update() {
	r.c.Update()
}

// frame runs one full frame and advances the clock.
func (r *rig) frame() {
	r.c.Update()
	r.c.FixedUpdate()
	r.clock.now += r.clock.frame
	r.in.jump = false
}

func (r *rig) advance(dt float64) {
	r.clock.now += dt
}

func (r *rig) events() []EventType {
	var out []EventType
	for _, e := range r.c.Events().Drain() {
		out = append(out, e.Type)
	}
	return out
}

// floor spans y <= 0.
func floor() box {
	return solid(-100, -10, 100, 0)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Motion.GroundMask = 1
	cfg.Motion.WallMask = 1
	return cfg
}
