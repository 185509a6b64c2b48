package levels

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedLevels(t *testing.T) {
	cases := []struct {
		name  string
		spawn cp.Vector
		kill  float64
	}{
		{"playground", cp.Vector{X: 3, Y: 3}, -8},
		{"flat.yaml", cp.Vector{X: 0, Y: 1}, -20},
		{"levels/arena.tmx", cp.Vector{X: 2.5, Y: 1.5}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Load(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.spawn, lvl.Spawn)
			assert.Equal(t, tc.kill, lvl.KillHeight)
			assert.NotEmpty(t, lvl.Boxes)
		})
	}
}

func TestPlaygroundSpawnIsStanding(t *testing.T) {
	lvl, err := Load("playground.yaml")
	require.NoError(t, err)
	w := lvl.Build()

	down := w.Cast(lvl.Spawn, cp.Vector{X: 0, Y: -1}, 1.1, world.MaskWalkable)
	require.True(t, down.Hit)
	assert.InDelta(t, 1.0, down.Distance, 1e-6)
}

func TestParse(t *testing.T) {
	lvl, err := Parse([]byte(`
name: tiny
grid:
  - "W."
  - "##"
boxes:
  - {x: 5, y: 0, w: 2, h: 1, layer: solid, tag: climbable_wall}
`))
	require.NoError(t, err)
	assert.Equal(t, "tiny", lvl.Name)
	assert.True(t, math.IsInf(lvl.KillHeight, -1))
	require.Len(t, lvl.Boxes, 3)
	assert.Equal(t, world.Box{
		BB:    cp.BB{L: 5, B: 0, R: 7, T: 1},
		Layer: world.LayerSolid,
		Tag:   controller.SurfaceClimbableWall,
	}, lvl.Boxes[2])
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		msg  string
	}{
		{"bad yaml", "grid: [", "unmarshal"},
		{"ragged grid", "grid: ['##', '#']", "grid row 1"},
		{"empty box", "boxes: [{x: 0, y: 0, w: 0, h: 1}]", "size must be positive"},
		{"bad layer", "boxes: [{w: 1, h: 1, layer: lava}]", "unknown layer"},
		{"bad tag", "boxes: [{w: 1, h: 1, tag: ice}]", "unknown surface tag"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("nowhere")
	assert.ErrorContains(t, err, "levels: read nowhere.yaml")
}
