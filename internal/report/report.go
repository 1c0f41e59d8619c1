// Package report renders analyzer output as human-readable text. It is
// purely presentational: every function is stateless and derives nothing
// itself, so the same analyzer results always render the same way.
package report

import (
	"fmt"
	"strings"

	"github.com/opscart/dockerbench/internal/stats"
)

const rule = 70

// Header renders a section banner.
func Header(title string) string {
	bar := strings.Repeat("=", rule)
	return fmt.Sprintf("\n%s\n  %s\n%s\n", bar, title, bar)
}

// StatsTable renders one group's descriptive statistics.
func StatsTable(label, unit string, s stats.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  %s\n", label)
	fmt.Fprintf(&b, "  %s\n", strings.Repeat("─", 60))
	fmt.Fprintf(&b, "  %-20s %12d\n", "n (samples)", s.N)
	fmt.Fprintf(&b, "  %-20s %12.2f %s\n", "Mean", s.Mean, unit)
	fmt.Fprintf(&b, "  %-20s %12.2f %s\n", "Median", s.Median, unit)
	fmt.Fprintf(&b, "  %-20s %12.2f %s\n", "Std Dev (σ)", s.StdDev, unit)
	fmt.Fprintf(&b, "  %-20s %11s±%.2f %s\n", "95% CI", "", s.CI95, unit)
	fmt.Fprintf(&b, "  %-20s [%.2f, %.2f]\n", "95% CI range", s.Lower(), s.Upper())
	fmt.Fprintf(&b, "  %-20s %12.2f %s\n", "Min", s.Min, unit)
	fmt.Fprintf(&b, "  %-20s %12.2f %s\n", "Max", s.Max, unit)

	if s.LowConfidence {
		fmt.Fprintf(&b, "  note: n < 30, confidence interval uses Student-t and has reduced validity\n")
	}

	return b.String()
}

// InvalidNote reports flagged rows excluded from a group's statistics.
func InvalidNote(invalid, total int) string {
	if invalid == 0 {
		return ""
	}
	return fmt.Sprintf("  note: %d of %d rows flagged invalid and excluded\n", invalid, total)
}

// SkipNote reports a dimension that produced no dataset.
func SkipNote(dimension, reason string) string {
	return fmt.Sprintf("  [SKIP] %s: %s\n", dimension, reason)
}

// OverheadLine renders the relative overhead of one mode over another,
// e.g. overlayfs metadata operations against a named volume.
func OverheadLine(what string, overlayMean, baselineMean float64) string {
	if baselineMean <= 0 {
		return ""
	}
	pct := (overlayMean - baselineMean) / baselineMean * 100
	return fmt.Sprintf("\n  %s: %+.1f%%\n", what, pct)
}

// ComparisonBlock renders one cross-platform significance test.
func ComparisonBlock(platformA, platformB string, c stats.Comparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s vs %s:\n", platformA, platformB)

	if c.Flawed {
		fmt.Fprintf(&b, "    statistically invalid: %s (n=%d vs n=%d)\n", c.Flaw, c.NA, c.NB)
		return b.String()
	}

	sig := "NO"
	if c.Significant {
		sig = "YES"
	}

	fmt.Fprintf(&b, "    U = %.2f, p = %.6f, significant: %s\n", c.U, c.P, sig)
	fmt.Fprintf(&b, "    Cliff's δ = %.3f (%s effect)\n", c.CliffsDelta, c.Effect)

	if c.LowConfidence {
		fmt.Fprintf(&b, "    note: fewer than 30 samples on at least one side\n")
	}

	return b.String()
}

// PlatformRow is one line of the cross-platform summary table.
type PlatformRow struct {
	Platform string
	Summary  stats.Summary
}

// SummaryMatrix renders the per-platform summary table for one group,
// one row per platform.
func SummaryMatrix(title, unit string, rows []PlatformRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  %s\n", title)
	fmt.Fprintf(&b, "  %s\n", strings.Repeat("─", rule))
	fmt.Fprintf(&b, "  %-30s %10s %8s %16s %6s\n", "Platform", "Mean ("+unit+")", "σ", "95% CI", "n")
	fmt.Fprintf(&b, "  %s\n", strings.Repeat("─", rule))

	for _, r := range rows {
		s := r.Summary
		fmt.Fprintf(&b, "  %-30s %10.1f %8.1f [%6.1f, %6.1f] %6d\n",
			r.Platform, s.Mean, s.StdDev, s.Lower(), s.Upper(), s.N)
	}

	fmt.Fprintf(&b, "  %s\n", strings.Repeat("─", rule))

	return b.String()
}
