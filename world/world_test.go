package world

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorld() *StaticWorld {
	w := New()
	w.AddBox(Box{BB: cp.BB{L: -10, B: -1, R: 10, T: 0}, Layer: LayerGround})
	w.AddBox(Box{BB: cp.BB{L: 2, B: 0, R: 3, T: 10}, Layer: LayerGround, Tag: controller.SurfaceClimbableWall})
	w.AddBox(Box{BB: cp.BB{L: -3, B: 0, R: -2, T: 10}, Layer: LayerSolid})
	return w
}

func TestCast(t *testing.T) {
	w := testWorld()

	cases := []struct {
		name     string
		origin   cp.Vector
		dir      cp.Vector
		max      float64
		mask     controller.Mask
		hit      bool
		distance float64
		normal   cp.Vector
		tag      controller.SurfaceTag
	}{
		{"floor", cp.Vector{X: 0, Y: 1}, cp.Vector{X: 0, Y: -1}, 1.1, MaskWalkable, true, 1, cp.Vector{X: 0, Y: 1}, controller.SurfaceSolid},
		{"floor out of reach", cp.Vector{X: 0, Y: 2}, cp.Vector{X: 0, Y: -1}, 1.1, MaskWalkable, false, 0, cp.Vector{}, ""},
		{"climbable wall", cp.Vector{X: 1.5, Y: 5}, cp.Vector{X: 1, Y: 0}, 0.6, MaskNonPlayer, true, 0.5, cp.Vector{X: -1, Y: 0}, controller.SurfaceClimbableWall},
		{"solid wall", cp.Vector{X: -1.5, Y: 5}, cp.Vector{X: -1, Y: 0}, 0.6, MaskNonPlayer, true, 0.5, cp.Vector{X: 1, Y: 0}, controller.SurfaceSolid},
		{"solid wall masked out", cp.Vector{X: -1.5, Y: 5}, cp.Vector{X: -1, Y: 0}, 0.6, MaskWalkable, false, 0, cp.Vector{}, ""},
		{"nothing above", cp.Vector{X: 0, Y: 1}, cp.Vector{X: 0, Y: 1}, 5, MaskNonPlayer, false, 0, cp.Vector{}, ""},
		{"zero length", cp.Vector{X: 0, Y: 0.5}, cp.Vector{X: 0, Y: -1}, 0, MaskNonPlayer, false, 0, cp.Vector{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := w.Cast(tc.origin, tc.dir, tc.max, tc.mask)
			require.Equal(t, tc.hit, res.Hit)
			if !tc.hit {
				assert.Equal(t, controller.RayResult{}, res)
				return
			}
			assert.InDelta(t, tc.distance, res.Distance, 1e-6)
			assert.InDelta(t, tc.normal.X, res.Normal.X, 1e-6)
			assert.InDelta(t, tc.normal.Y, res.Normal.Y, 1e-6)
			assert.Equal(t, tc.tag, res.Tag)
		})
	}
}

func TestCastNearestWins(t *testing.T) {
	w := New()
	w.AddBox(Box{BB: cp.BB{L: -1, B: -5, R: 1, T: -2}})
	w.AddBox(Box{BB: cp.BB{L: -1, B: -1, R: 1, T: 0}, Tag: controller.SurfaceClimbableWall})

	res := w.Cast(cp.Vector{X: 0, Y: 1}, cp.Vector{X: 0, Y: -1}, 10, MaskNonPlayer)
	require.True(t, res.Hit)
	assert.InDelta(t, 1.0, res.Distance, 1e-6)
	assert.Equal(t, controller.SurfaceClimbableWall, res.Tag)
}

func TestAddBoxDefaults(t *testing.T) {
	w := New()
	shape := w.AddBox(Box{BB: cp.BB{L: 0, B: 0, R: 1, T: 1}})
	assert.Equal(t, controller.SurfaceSolid, shape.UserData)
	require.Len(t, w.Boxes(), 1)
	assert.Equal(t, LayerGround, w.Boxes()[0].Layer)
	assert.Equal(t, uint(LayerGround), shape.Filter.Categories)
}

func TestParseLayerAndTag(t *testing.T) {
	l, err := ParseLayer("Wall")
	require.NoError(t, err)
	assert.Equal(t, LayerSolid, l)
	l, err = ParseLayer("")
	require.NoError(t, err)
	assert.Equal(t, LayerGround, l)
	_, err = ParseLayer("lava")
	assert.Error(t, err)

	tag, err := ParseTag("climbable")
	require.NoError(t, err)
	assert.Equal(t, controller.SurfaceClimbableWall, tag)
	_, err = ParseTag("ice")
	assert.Error(t, err)
}

func TestLevelKilledAndExtent(t *testing.T) {
	lvl := NewLevel("test")
	assert.False(t, lvl.Killed(cp.Vector{Y: -1e9}), "no kill height by default")

	lvl.KillHeight = -3
	lvl.Spawn = cp.Vector{X: 1, Y: 2}
	lvl.Boxes = []Box{{BB: cp.BB{L: -4, B: -1, R: 4, T: 0}}}
	assert.True(t, lvl.Killed(cp.Vector{Y: -3.5}))
	assert.False(t, lvl.Killed(cp.Vector{Y: -2}))
	assert.Equal(t, cp.BB{L: -4, B: -1, R: 4, T: 2}, lvl.Extent())
	assert.Len(t, lvl.Build().Boxes(), 1)
}

type anchor struct{ p cp.Vector }

func (a *anchor) Position() cp.Vector     { return a.p }
func (a *anchor) SetPosition(p cp.Vector) { a.p = p }

type idle struct{}

func (idle) JumpPressed() bool   { return false }
func (idle) Horizontal() float64 { return 0 }
func (idle) SprintHeld() bool    { return false }

type ticks struct{ now float64 }

func (c *ticks) Now() float64        { return c.now }
func (c *ticks) FrameDelta() float64 { return 1.0 / 60 }
func (c *ticks) FixedDelta() float64 { return 1.0 / 60 }

func TestControllerLandsOnStaticWorld(t *testing.T) {
	w := testWorld()
	cfg := controller.DefaultConfig()
	cfg.Motion.GroundMask = MaskWalkable
	cfg.Motion.WallMask = MaskNonPlayer

	pos := &anchor{p: cp.Vector{X: 0, Y: 3}}
	clk := &ticks{}
	c, err := controller.New(cfg, controller.Deps{Caster: w, Position: pos, Input: idle{}, Clock: clk})
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		c.Update()
		c.FixedUpdate()
		clk.now += 1.0 / 60
	}
	assert.True(t, c.State().IsGrounded)
	assert.GreaterOrEqual(t, pos.p.Y, 1.0-1e-6)
	assert.LessOrEqual(t, pos.p.Y, 1.0+controller.DefaultSkinMargin)
}
