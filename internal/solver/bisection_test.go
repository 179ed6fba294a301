package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBisection_FindsRoot(t *testing.T) {
	tests := []struct {
		name      string
		f         Func
		low, high float64
		want      float64
	}{
		{"linear", func(x float64) float64 { return 2*x - 3 }, 0, 10, 1.5},
		{"square root of two", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2},
		{"decreasing", func(x float64) float64 { return 100 - x }, 0, 1000, 100},
		{"power curve", func(x float64) float64 { return math.Pow(x/124, 1.2) - 3 }, 1, 10000, 124 * math.Pow(3, 1/1.2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Bisection(tt.f, tt.low, tt.high)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, x, 1e-5)
		})
	}
}

func TestBisection_EndpointIsRoot(t *testing.T) {
	f := func(x float64) float64 { return x - 5 }

	x, err := Bisection(f, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 5.0, x)

	x, err = Bisection(f, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, x)
}

func TestBisection_EndpointWithinTolerance(t *testing.T) {
	f := func(x float64) float64 { return x - 5.05 }
	x, err := Bisection(f, 5, 100, WithTolerance(0.1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, x, "low end already within tolerance")
}

func TestBisection_NotBracketed(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, err := Bisection(f, -3, 3)
	assert.ErrorIs(t, err, ErrNotBracketed)

	g := func(x float64) float64 { return -x - 10 }
	_, err = Bisection(g, 0, 100)
	assert.ErrorIs(t, err, ErrNotBracketed)
}

func TestBisection_NoConvergence(t *testing.T) {
	f := func(x float64) float64 { return x - math.Pi }
	_, err := Bisection(f, 0, 1000, WithMaxIterations(3))
	assert.ErrorIs(t, err, ErrNoConvergence)
}

func TestBisection_StepObjective(t *testing.T) {
	// floor((10000 - pos) / 120) - 41: any pos in (4960, 5080] is a root.
	f := func(pos float64) float64 { return math.Floor((10000-pos)/120) - 41 }
	x, err := Bisection(f, 0, 10000, WithTolerance(0.5))
	require.NoError(t, err)
	assert.Equal(t, 41.0, math.Floor((10000-x)/120))
}

func TestBisection_HalfWidthStop(t *testing.T) {
	// Discontinuous sign change at 1: |f| never drops under tolerance,
	// so the half-width criterion must end the search.
	f := func(x float64) float64 {
		if x < 1 {
			return -1
		}
		return 1
	}
	x, err := Bisection(f, 0, 2, WithTolerance(0.01))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x, 0.02)
}
