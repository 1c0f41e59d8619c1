// Package sample holds the per-iteration measurement model and its
// append-only CSV persistence.
package sample

import (
	"strconv"
	"time"
)

// Measurement is a tagged optional value. An invalid measurement carries
// the reason it could not be taken instead of overloading the numeric
// column with a sentinel.
type Measurement struct {
	Value  float64
	Valid  bool
	Reason string
}

// Valid wraps a measured value.
func Valid(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// Invalid records an absent measurement with the reason it is absent.
// The stored value is always zero.
func Invalid(reason string) Measurement {
	return Measurement{Reason: reason}
}

// Millis wraps an elapsed duration as a measurement in milliseconds.
func Millis(d time.Duration) Measurement {
	return Valid(float64(d.Nanoseconds()) / 1e6)
}

// Sample is one row of one dimension's dataset: the iteration it belongs
// to, the categorical labels specific to the dimension (image, mode, …)
// and the measurement itself. Samples are immutable once written.
type Sample struct {
	Iteration int
	Labels    []string
	M         Measurement
}

// New creates a sample for the given iteration.
func New(iteration int, m Measurement, labels ...string) Sample {
	return Sample{Iteration: iteration, Labels: labels, M: m}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
