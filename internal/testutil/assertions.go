package testutil

import (
	"math"
	"testing"
)

// AssertNaN проверяет, что значение не определено.
func AssertNaN(t testing.TB, v float64, msgAndArgs ...any) {
	t.Helper()

	if !math.IsNaN(v) {
		t.Fatalf("expected NaN, got %v %v", v, msgAndArgs)
	}
}

// AssertFinite fails when v is NaN or infinite.
func AssertFinite(t testing.TB, v float64, msgAndArgs ...any) {
	t.Helper()

	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("expected a finite value, got %v %v", v, msgAndArgs)
	}
}
