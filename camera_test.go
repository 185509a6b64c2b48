package main

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestCameraToScreenFlipsY(t *testing.T) {
	c := NewCamera(200, 100, 10)
	c.Snap(cp.Vector{X: 5, Y: 5})

	cases := []struct {
		name   string
		world  cp.Vector
		sx, sy float32
	}{
		{"center", cp.Vector{X: 5, Y: 5}, 100, 50},
		{"up is up", cp.Vector{X: 5, Y: 6}, 100, 40},
		{"right", cp.Vector{X: 7, Y: 5}, 120, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := c.ToScreen(tc.world)
			assert.InDelta(t, tc.sx, x, 1e-4)
			assert.InDelta(t, tc.sy, y, 1e-4)
		})
	}
}

func TestCameraClampsToBounds(t *testing.T) {
	c := NewCamera(200, 100, 10)
	c.SetWorldBounds(cp.BB{L: 0, B: 0, R: 40, T: 8})

	c.Snap(cp.Vector{X: -100, Y: 100})
	// view is 20x10 units: x clamps to the left edge, y centers in the short level
	assert.Equal(t, cp.Vector{X: 10, Y: 4}, c.Pos)

	c.Snap(cp.Vector{X: 25, Y: 0})
	assert.Equal(t, 25.0, c.Pos.X)
}

func TestCameraFollowEases(t *testing.T) {
	c := NewCamera(200, 100, 10)
	c.Follow(cp.Vector{X: 10})
	assert.InDelta(t, 1.5, c.Pos.X, 1e-9)
	for i := 0; i < 200; i++ {
		c.Follow(cp.Vector{X: 10})
	}
	assert.InDelta(t, 10, c.Pos.X, 1e-6)
}
