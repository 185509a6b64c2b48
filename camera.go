package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/common"
)

// Camera maps y-up world units to y-down screen pixels, centered on Pos.
type Camera struct {
	Pos cp.Vector

	scale   float64
	screenW float64
	screenH float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth  float64
	bounds  cp.BB
	bounded bool
}

func NewCamera(screenW, screenH int, scale float64) *Camera {
	return &Camera{
		scale:   scale,
		screenW: float64(screenW),
		screenH: float64(screenH),
		smooth:  0.15,
	}
}

// SetWorldBounds keeps the view inside bb when the level is larger than the view.
func (c *Camera) SetWorldBounds(bb cp.BB) {
	c.bounds = bb
	c.bounded = bb.R > bb.L && bb.T > bb.B
}

func (c *Camera) Scale() float64 {
	return c.scale
}

// Follow eases toward target.
func (c *Camera) Follow(target cp.Vector) {
	c.Pos.X = common.Lerp(c.Pos.X, target.X, c.smooth)
	c.Pos.Y = common.Lerp(c.Pos.Y, target.Y, c.smooth)
	c.clamp()
}

// Snap jumps straight to target.
func (c *Camera) Snap(target cp.Vector) {
	c.Pos = target
	c.clamp()
}

func (c *Camera) clamp() {
	if !c.bounded || c.scale <= 0 {
		return
	}
	halfW := c.screenW / 2 / c.scale
	halfH := c.screenH / 2 / c.scale
	c.Pos.X = clampAxis(c.Pos.X, c.bounds.L, c.bounds.R, halfW)
	c.Pos.Y = clampAxis(c.Pos.Y, c.bounds.B, c.bounds.T, halfH)
}

func clampAxis(v, lo, hi, half float64) float64 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return common.Clamp(v, lo+half, hi-half)
}

// ToScreen converts a world point to screen pixels.
func (c *Camera) ToScreen(p cp.Vector) (float32, float32) {
	x := (p.X-c.Pos.X)*c.scale + c.screenW/2
	y := c.screenH/2 - (p.Y-c.Pos.Y)*c.scale
	return float32(x), float32(y)
}
