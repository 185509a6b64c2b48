package input

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptJumpIsEdgeTriggered(t *testing.T) {
	s, err := NewScript("hold", []byte(`jump = frame >= 2 && frame < 6`))
	require.NoError(t, err)

	var pressed []int
	for frame := 0; frame < 10; frame++ {
		require.NoError(t, s.Step(Observation{Frame: frame}))
		if s.JumpPressed() {
			pressed = append(pressed, frame)
		}
	}
	assert.Equal(t, []int{2}, pressed)
}

func TestScriptOutputs(t *testing.T) {
	src := `
math := import("math")
move = grounded ? -1 : 0.5
sprint = x > 3
if y < 0 { move = math.abs(-0.25) }
`
	s, err := NewScript("outputs", []byte(src))
	require.NoError(t, err)

	cases := []struct {
		name   string
		obs    Observation
		move   float64
		sprint bool
	}{
		{"grounded", Observation{Grounded: true}, -1, false},
		{"airborne", Observation{Position: cp.Vector{X: 5, Y: 1}}, 0.5, true},
		{"below zero", Observation{Position: cp.Vector{Y: -1}}, 0.25, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, s.Step(tc.obs))
			assert.InDelta(t, tc.move, s.Horizontal(), 1e-9)
			assert.Equal(t, tc.sprint, s.SprintHeld())
			assert.False(t, s.JumpPressed())
		})
	}
}

func TestScriptStatePersists(t *testing.T) {
	src := `
if is_undefined(state.count) { state.count = 0 }
state.count += 1
jump = state.count % 2 == 0
`
	s, err := NewScript("state", []byte(src))
	require.NoError(t, err)

	var pressed int
	for frame := 0; frame < 8; frame++ {
		require.NoError(t, s.Step(Observation{Frame: frame}))
		if s.JumpPressed() {
			pressed++
		}
	}
	assert.Equal(t, 4, pressed)
}

func TestScriptErrors(t *testing.T) {
	_, err := NewScript("broken", []byte(`move = (`))
	assert.ErrorContains(t, err, "compile broken")

	s, err := NewScript("runtime", []byte(`move = 1 / (frame - frame)`))
	require.NoError(t, err)
	assert.Error(t, s.Step(Observation{Frame: 3}))
}

func TestLoadBundledScript(t *testing.T) {
	s, err := LoadScript("run_and_jump")
	require.NoError(t, err)
	require.NoError(t, s.Step(Observation{Frame: 0, Grounded: true}))
}
