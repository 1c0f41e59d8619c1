package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// alpha is the fixed significance threshold for the rank-based test.
const alpha = 0.05

// Cliff's delta magnitude bands (Romano et al. thresholds).
const (
	negligibleDelta = 0.147
	smallDelta      = 0.33
	mediumDelta     = 0.474
)

// EffectBand classifies a Cliff's delta magnitude.
type EffectBand string

const (
	EffectNegligible EffectBand = "negligible"
	EffectSmall      EffectBand = "small"
	EffectMedium     EffectBand = "medium"
	EffectLarge      EffectBand = "large"
)

// Comparison is the result of comparing one dimension's dataset across two
// platforms. It is derived on demand from the underlying samples and never
// persisted as a source of truth.
type Comparison struct {
	NA, NB       int
	MeanA, MeanB float64

	// U is the Mann-Whitney statistic of group A.
	U float64

	// P is the two-sided p-value from the normal approximation with tie
	// correction.
	P           float64
	Significant bool

	// CliffsDelta is the rank-based effect size in [-1, 1]; positive
	// means group A tends to exceed group B.
	CliffsDelta float64
	Effect      EffectBand

	// LowConfidence marks comparisons where either side has fewer than 30
	// samples.
	LowConfidence bool

	// Flawed marks comparisons that violate the test's preconditions.
	// A flawed comparison carries no fabricated p-value; Flaw says why.
	Flawed bool
	Flaw   string
}

// Compare runs a two-sided Mann-Whitney U test between two groups of valid
// measurements, with Cliff's delta as the effect size. Neither normality
// nor equal sizes are assumed. Groups with fewer than two samples yield a
// flagged result rather than an error: statistical deficiencies are part
// of the report, not exceptions.
func Compare(a, b []float64) Comparison {
	c := Comparison{NA: len(a), NB: len(b)}

	if len(a) > 0 {
		c.MeanA, _ = stats.Mean(a)
	}
	if len(b) > 0 {
		c.MeanB, _ = stats.Mean(b)
	}

	if len(a) < 2 || len(b) < 2 {
		c.Flawed = true
		c.Flaw = "need at least 2 samples per group"
		return c
	}

	c.LowConfidence = len(a) < minNormalN || len(b) < minNormalN

	u, tieTerm := uStatistic(a, b)
	c.U = u

	n1, n2 := float64(len(a)), float64(len(b))
	c.CliffsDelta = 2*u/(n1*n2) - 1
	c.Effect = classifyDelta(c.CliffsDelta)

	c.P = twoSidedP(u, n1, n2, tieTerm)
	c.Significant = c.P < alpha

	return c
}

// uStatistic computes group A's Mann-Whitney U via average ranks, plus the
// tie-correction term Σ(t³−t) over tie groups in the pooled sample.
func uStatistic(a, b []float64) (u, tieTerm float64) {
	type obs struct {
		v     float64
		fromA bool
	}

	pooled := make([]obs, 0, len(a)+len(b))
	for _, v := range a {
		pooled = append(pooled, obs{v, true})
	}
	for _, v := range b {
		pooled = append(pooled, obs{v, false})
	}

	sort.Slice(pooled, func(i, j int) bool { return pooled[i].v < pooled[j].v })

	var rankSumA float64
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].v == pooled[i].v {
			j++
		}

		// Ranks are 1-based; tied values share the average rank.
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if pooled[k].fromA {
				rankSumA += avgRank
			}
		}

		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}

		i = j
	}

	n1 := float64(len(a))
	u = rankSumA - n1*(n1+1)/2

	return u, tieTerm
}

// twoSidedP approximates the two-sided p-value of U with the normal
// distribution, applying tie and continuity corrections.
func twoSidedP(u, n1, n2, tieTerm float64) float64 {
	mu := n1 * n2 / 2

	n := n1 + n2
	variance := n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if variance <= 0 {
		// All observations tied: the groups are indistinguishable.
		return 1
	}

	z := (math.Abs(u-mu) - 0.5) / math.Sqrt(variance)
	if z < 0 {
		z = 0
	}

	p := 2 * (1 - distuv.UnitNormal.CDF(z))
	if p > 1 {
		p = 1
	}
	return p
}

func classifyDelta(delta float64) EffectBand {
	switch abs := math.Abs(delta); {
	case abs < negligibleDelta:
		return EffectNegligible
	case abs < smallDelta:
		return EffectSmall
	case abs < mediumDelta:
		return EffectMedium
	default:
		return EffectLarge
	}
}
