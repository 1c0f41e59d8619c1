package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opscart/dockerbench/internal/stats"
)

func summary() stats.Summary {
	return stats.Summary{
		N:      50,
		Mean:   54.3,
		Median: 53.9,
		StdDev: 4.2,
		Min:    47.1,
		Max:    68.0,
		CI95:   1.16,
	}
}

func TestStatsTable(t *testing.T) {
	out := StatsTable("alpine (warm start)", "ms", summary())

	assert.Contains(t, out, "alpine (warm start)")
	assert.Contains(t, out, "54.30 ms")
	assert.Contains(t, out, "±1.16 ms")
	assert.NotContains(t, out, "reduced validity")
}

func TestStatsTableFlagsLowConfidence(t *testing.T) {
	s := summary()
	s.N = 10
	s.LowConfidence = true

	out := StatsTable("copy-up", "ms", s)
	assert.Contains(t, out, "reduced validity")
}

func TestStatsTableIsStateless(t *testing.T) {
	assert.Equal(t,
		StatsTable("x", "ms", summary()),
		StatsTable("x", "ms", summary()),
	)
}

func TestInvalidNote(t *testing.T) {
	assert.Empty(t, InvalidNote(0, 50))
	assert.Contains(t, InvalidNote(3, 50), "3 of 50 rows flagged invalid")
}

func TestComparisonBlock(t *testing.T) {
	c := stats.Comparison{
		NA: 50, NB: 50,
		MeanA: 300, MeanB: 500,
		U: 0, P: 0.000001, Significant: true,
		CliffsDelta: -1, Effect: stats.EffectLarge,
	}

	out := ComparisonBlock("azure-ssd", "azure-hdd", c)

	assert.Contains(t, out, "azure-ssd vs azure-hdd")
	assert.Contains(t, out, "significant: YES")
	assert.Contains(t, out, "large effect")
}

func TestComparisonBlockFlawed(t *testing.T) {
	c := stats.Comparison{
		NA: 1, NB: 50,
		Flawed: true,
		Flaw:   "need at least 2 samples per group",
	}

	out := ComparisonBlock("a", "b", c)

	assert.Contains(t, out, "statistically invalid")
	assert.Contains(t, out, "n=1 vs n=50")
	assert.NotContains(t, out, "p =")
}

func TestOverheadLine(t *testing.T) {
	out := OverheadLine("OverlayFS overhead vs volume", 120, 100)
	assert.Contains(t, out, "+20.0%")

	assert.Empty(t, OverheadLine("x", 120, 0))
}

func TestSummaryMatrix(t *testing.T) {
	rows := []PlatformRow{
		{Platform: "azure-premium-ssd", Summary: summary()},
		{Platform: "macos-docker-desktop", Summary: summary()},
	}

	out := SummaryMatrix("Warm Startup Latency (alpine)", "ms", rows)

	assert.Contains(t, out, "azure-premium-ssd")
	assert.Contains(t, out, "macos-docker-desktop")
	assert.Equal(t, 2, strings.Count(out, "54.3"))
}

func TestLatexTable(t *testing.T) {
	rows := []PlatformRow{
		{Platform: "azure-premium-ssd", Summary: summary()},
	}

	out := LatexTable("Startup latency.", "tab:startup-latency", rows)

	assert.Contains(t, out, "\\begin{table}")
	assert.Contains(t, out, "Azure Premium Ssd & 54.3 & 4.2")
	assert.Contains(t, out, "\\end{table}")
}
