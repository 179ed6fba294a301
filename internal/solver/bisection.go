// Package solver provides the scalar root finder behind every reverse
// calculation.
package solver

import (
	"errors"
	"math"
)

const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

var (
	// ErrNotBracketed is returned when f(low) and f(high) share a sign and
	// neither end is already a root.
	ErrNotBracketed = errors.New("root is not bracketed")
	// ErrNoConvergence is returned when the iteration budget runs out.
	ErrNoConvergence = errors.New("bisection did not converge")
)

// Func is a one-parameter objective; its root is the requested input value.
type Func func(x float64) float64

type options struct {
	tolerance     float64
	maxIterations int
}

// Option tunes a Bisection call.
type Option func(*options)

// WithTolerance sets both the |f(x)| acceptance and the half-bracket width
// stop criterion.
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tolerance = tol }
}

// WithMaxIterations bounds the number of halvings.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// Bisection finds x in [low, high] with |f(x)| < tolerance.
//
// Only f(low) is tracked across iterations: after each halving the sign of
// f(mid) is compared against the current f(low), and f(high) is never
// re-evaluated. Results depend on this for step-shaped objectives (floor()
// inside f), so keep it that way.
func Bisection(f Func, low, high float64, opts ...Option) (float64, error) {
	o := options{tolerance: DefaultTolerance, maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&o)
	}

	fLow := f(low)
	fHigh := f(high)

	if math.Abs(fLow) < o.tolerance {
		return low, nil
	}
	if math.Abs(fHigh) < o.tolerance {
		return high, nil
	}
	if fLow*fHigh > 0 {
		return 0, ErrNotBracketed
	}

	for range o.maxIterations {
		mid := (low + high) / 2
		fMid := f(mid)

		if math.Abs(fMid) < o.tolerance || (high-low)/2 < o.tolerance {
			return mid, nil
		}

		if fLow*fMid < 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
	}

	return 0, ErrNoConvergence
}
