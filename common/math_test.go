package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.25, Clamp(0.25, -1, 1))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 10.0, Lerp(10, 20, 0))
}

func TestSmoothingFactor(t *testing.T) {
	cases := []struct {
		name     string
		rate, dt float64
		want     float64
	}{
		{"no rate", 0, 0.1, 0},
		{"no time", 10, 0, 0},
		{"one time constant", 1, 1, 0.6321205588},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, SmoothingFactor(tc.rate, tc.dt), 1e-9)
		})
	}
	assert.InDelta(t, 1.0, SmoothingFactor(1e6, 1), 1e-12)
}
