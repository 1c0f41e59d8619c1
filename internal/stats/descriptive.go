// Package stats computes the descriptive statistics and cross-platform
// comparisons for measurement datasets. Every function here is pure:
// identical inputs always produce identical outputs, and no state is kept
// between calls.
package stats

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// minNormalN is the sample size above which the z-based confidence
// interval is considered valid. Smaller datasets get a Student-t interval
// and a reduced-validity flag, never silent suppression.
const minNormalN = 30

// Summary holds the descriptive statistics for one dataset group.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64

	// CI95 is the half-width of the 95% confidence interval around Mean.
	CI95 float64

	// LowConfidence marks summaries computed from fewer than 30 samples,
	// where the normal approximation behind CI95 is shaky.
	LowConfidence bool
}

// Lower returns the lower bound of the 95% confidence interval.
func (s Summary) Lower() float64 { return s.Mean - s.CI95 }

// Upper returns the upper bound of the 95% confidence interval.
func (s Summary) Upper() float64 { return s.Mean + s.CI95 }

// Summarize computes descriptive statistics over the valid values of a
// dataset group. Errors only on an empty input.
func Summarize(values []float64) (Summary, error) {
	n := len(values)
	if n == 0 {
		return Summary{}, fmt.Errorf("empty dataset")
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	var sd float64
	if n > 1 {
		sd, _ = stats.StandardDeviationSample(values)
	}

	s := Summary{
		N:             n,
		Mean:          mean,
		Median:        median,
		StdDev:        sd,
		Min:           min,
		Max:           max,
		LowConfidence: n < minNormalN,
	}

	if n > 1 {
		s.CI95 = criticalValue(n) * sd / math.Sqrt(float64(n))
	}

	return s, nil
}

// criticalValue returns the two-sided 95% critical value: the standard
// normal quantile for large samples, the Student-t quantile with n-1
// degrees of freedom below the normal-approximation threshold.
func criticalValue(n int) float64 {
	if n >= minNormalN {
		return distuv.UnitNormal.Quantile(0.975)
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	return t.Quantile(0.975)
}
