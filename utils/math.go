package utils

import (
	"math"
	"time"
)

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// SecondsToDuration converts float seconds to a time.Duration rounded to the nearest nanosecond.
// Non finite values and values outside the range of time.Duration are out of range errors.
func SecondsToDuration(seconds float64) (time.Duration, error) {
	ns := math.Round(seconds * float64(time.Second))
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if math.IsNaN(ns) || ns >= float64(math.MaxInt64) || ns < float64(math.MinInt64) {
		return 0, NewOutOfRangeError("%g seconds does not fit in a duration", seconds)
	}
	return time.Duration(ns), nil
}
