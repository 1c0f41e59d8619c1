package report

import (
	"fmt"
	"strings"
)

// LatexTable renders the cross-platform rows as a LaTeX table ready to
// paste into a paper.
func LatexTable(caption, label string, rows []PlatformRow) string {
	var b strings.Builder

	b.WriteString("\\begin{table}[h]\n\\centering\n")
	fmt.Fprintf(&b, "\\caption{%s}\n", caption)
	fmt.Fprintf(&b, "\\label{%s}\n", label)
	b.WriteString("\\begin{tabular}{lccccc}\n\\toprule\n")
	b.WriteString("\\textbf{Platform} & \\textbf{Mean (ms)} & \\textbf{$\\sigma$ (ms)} & \\textbf{95\\% CI} & \\textbf{Min} & \\textbf{Max} \\\\\n")
	b.WriteString("\\midrule\n")

	for _, r := range rows {
		s := r.Summary
		fmt.Fprintf(&b, "%s & %.1f & %.1f & [%.1f, %.1f] & %.1f & %.1f \\\\\n",
			latexName(r.Platform), s.Mean, s.StdDev, s.Lower(), s.Upper(), s.Min, s.Max)
	}

	b.WriteString("\\bottomrule\n\\end{tabular}\n\\end{table}\n")

	return b.String()
}

func latexName(platform string) string {
	words := strings.FieldsFunc(platform, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
