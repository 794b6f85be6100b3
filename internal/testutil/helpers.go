// Package testutil provides reusable assertion helpers for synthesis tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for synthesis test scenarios.
const (
	SumTolerance    = 1e-9
	SampleTolerance = 1e-12
	MomentTolerance = 5e-2
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonicDecreasing verifies that a slice never increases.
func AssertMonotonicDecreasing(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			return assert.Fail(t, "not monotonically decreasing",
				"s[%d]=%f > s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero value", "s[%d]=%f, want 0", i, v)
		}
	}
	return true
}

// Mean returns the arithmetic mean of s.
func Mean(s []float64) float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Variance returns the population variance of s.
func Variance(s []float64) float64 {
	mean := Mean(s)
	var sum float64
	for _, v := range s {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(s))
}
