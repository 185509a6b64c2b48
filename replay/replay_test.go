package replay

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSpec(frames int) prefabs.ReplaySpec {
	return prefabs.ReplaySpec{
		Name:      "flat",
		Level:     "flat.yaml",
		Character: "character.yaml",
		Frames:    frames,
		FrameRate: 60,
		TickRate:  60,
	}
}

func TestIdleStaysPut(t *testing.T) {
	res, err := Run(flatSpec(120), WithScript("idle", []byte(`move = 0`)))
	require.NoError(t, err)

	require.Len(t, res.Samples, 120)
	assert.Equal(t, 120, res.FixedSteps)
	assert.Equal(t, 1, res.Count(controller.EventGrounded))
	assert.Empty(t, res.Jumps())
	for _, s := range res.Samples {
		assert.Equal(t, cp.Vector{X: 0, Y: 1}, s.Position)
		assert.True(t, s.Grounded)
	}
}

func TestLoggerLinesArePrefixedOnce(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(flatSpec(5), WithScript("idle", []byte(`move = 0`)), WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "controller: "), line)
		assert.Equal(t, 1, strings.Count(line, "controller: "), line)
	}
}

func TestRunOffTheEdgeRespawns(t *testing.T) {
	res, err := Run(flatSpec(300), WithScript("left", []byte("move = -1\nsprint = true")))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Respawns)
	assert.Equal(t, 1, res.Count(controller.EventAirborne))
	last := res.Samples[len(res.Samples)-1]
	assert.Less(t, last.Position.X, 0.0)
	assert.Greater(t, last.Position.X, -50.0)
}

func TestBundledRunAndJump(t *testing.T) {
	spec, err := prefabs.LoadReplaySpec("replay_run.yaml")
	require.NoError(t, err)

	res, err := Run(spec)
	require.NoError(t, err)

	assert.Equal(t, "run and jump", res.Name)
	assert.Equal(t, 250, res.FixedSteps)
	assert.Zero(t, res.Respawns)

	jumps := res.Jumps()
	require.Len(t, jumps, 2)
	assert.Equal(t, controller.JumpGround, jumps[0].Jump)
	assert.Equal(t, controller.JumpAir, jumps[1].Jump)
	assert.Less(t, jumps[0].Time, jumps[1].Time)
}

func TestBundledWallBounce(t *testing.T) {
	spec, err := prefabs.LoadReplaySpec("replay_wall.yaml")
	require.NoError(t, err)

	res, err := Run(spec)
	require.NoError(t, err)

	jumps := res.Jumps()
	require.Len(t, jumps, 2)
	assert.True(t, jumps[0].WallBounce, "push off the pillar")
	assert.False(t, jumps[1].WallBounce)
	assert.Equal(t, controller.JumpGround, jumps[1].Jump)
	assert.GreaterOrEqual(t, res.Count(controller.EventGrounded), 2)

	last := res.Samples[len(res.Samples)-1]
	assert.True(t, last.Grounded)
	assert.Less(t, last.Position.X, 12.5)
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.ReplaySpec
		opts []Option
		msg  string
	}{
		{"zero frames", flatSpec(0), nil, "frames must be positive"},
		{"negative frames", flatSpec(-3), nil, "frames must be positive, got -3"},
		{"missing level", prefabs.ReplaySpec{Level: "nowhere", Character: "character.yaml", Frames: 1, FrameRate: 60, TickRate: 60}, nil, "levels: read"},
		{"missing script", flatSpec(1), nil, "input: load"},
		{"bad rates", prefabs.ReplaySpec{Level: "flat.yaml", Character: "character.yaml", Frames: 1}, []Option{WithScript("idle", []byte("move = 0"))}, "rates must be positive"},
		{"script fails", flatSpec(5), []Option{WithScript("boom", []byte("move = 1 / (frame - frame)"))}, "input: run boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(tc.spec, tc.opts...)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}
