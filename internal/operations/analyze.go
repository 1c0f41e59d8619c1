package operations

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/opscart/dockerbench/internal/harness"
	"github.com/opscart/dockerbench/internal/report"
	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/stats"
)

// AnalyzeOpts holds the options for the Analyze operation.
type AnalyzeOpts struct {
	// Dirs are the run directories to analyze. One directory yields a
	// per-platform report; two or more add cross-platform significance
	// testing.
	Dirs []string
	// Latex additionally emits cross-platform tables as LaTeX.
	Latex bool
	// Out receives the rendered report; defaults to stdout.
	Out io.Writer
}

// platformRun is one loaded run directory: its label and whatever
// dimension datasets it actually produced.
type platformRun struct {
	label    string
	datasets map[string]*sample.Dataset
	missing  map[string]string
}

// Analyze renders the statistical report for one or more run directories.
func Analyze(opts *AnalyzeOpts) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	runs, err := loadRuns(opts.Dirs)
	if err != nil {
		return err
	}

	for _, info := range harness.Catalog() {
		fmt.Fprint(out, report.Header(fmt.Sprintf("%s (%s)", info.Name, info.Unit)))

		for _, run := range runs {
			if reason, ok := run.missing[info.Name]; ok {
				fmt.Fprint(out, report.SkipNote(run.label+" "+info.Name, reason))
				continue
			}
			writeDescriptive(out, run, info)
		}

		if len(runs) > 1 {
			writeCrossPlatform(out, runs, info, opts.Latex)
		}
	}

	return nil
}

func loadRuns(dirs []string) ([]*platformRun, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no run directories given")
	}

	runs := make([]*platformRun, 0, len(dirs))
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("run directory %s: %w", dir, err)
		}

		run := &platformRun{
			label:    filepath.Base(filepath.Clean(dir)),
			datasets: make(map[string]*sample.Dataset),
			missing:  make(map[string]string),
		}

		for _, info := range harness.Catalog() {
			path := filepath.Join(dir, info.Filename)

			ds, err := sample.Load(path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				run.missing[info.Name] = "no data file (dimension skipped or run interrupted)"
			case err != nil:
				return nil, fmt.Errorf("load %s: %w", path, err)
			default:
				run.datasets[info.Name] = ds
			}
		}

		runs = append(runs, run)
	}

	return runs, nil
}

func writeDescriptive(out io.Writer, run *platformRun, info harness.DimensionInfo) {
	ds := run.datasets[info.Name]

	for _, key := range ds.GroupKeys() {
		g := ds.Groups[key]

		label := run.label
		if key != "" {
			label += " / " + key
		}

		s, err := stats.Summarize(g.Values)
		if err != nil {
			fmt.Fprint(out, report.SkipNote(label, "no valid samples"))
			fmt.Fprint(out, report.InvalidNote(g.Invalid, g.Total))
			continue
		}

		fmt.Fprint(out, report.StatsTable(label, info.Unit, s))
		fmt.Fprint(out, report.InvalidNote(g.Invalid, g.Total))
	}

	writeOverhead(out, run, info)
}

// writeOverhead adds the overlay-vs-volume relative cost for the
// dimensions that measure both targets.
func writeOverhead(out io.Writer, run *platformRun, info harness.DimensionInfo) {
	if info.Name != "write-performance" && info.Name != "metadata-operations" {
		return
	}

	ds := run.datasets[info.Name]
	overlay, okO := ds.Groups["overlay"]
	volume, okV := ds.Groups["volume"]
	if !okO || !okV {
		return
	}

	so, errO := stats.Summarize(overlay.Values)
	sv, errV := stats.Summarize(volume.Values)
	if errO != nil || errV != nil {
		return
	}

	fmt.Fprint(out, report.OverheadLine(
		run.label+" overlay vs volume", so.Mean, sv.Mean,
	))
}

func writeCrossPlatform(out io.Writer, runs []*platformRun, info harness.DimensionInfo, latex bool) {
	for _, key := range sharedGroupKeys(runs, info.Name) {
		rows := make([]report.PlatformRow, 0, len(runs))
		values := make(map[string][]float64, len(runs))

		for _, run := range runs {
			ds, ok := run.datasets[info.Name]
			if !ok {
				continue
			}
			g, ok := ds.Groups[key]
			if !ok {
				continue
			}

			s, err := stats.Summarize(g.Values)
			if err != nil {
				continue
			}

			rows = append(rows, report.PlatformRow{Platform: run.label, Summary: s})
			values[run.label] = g.Values
		}

		if len(rows) < 2 {
			continue
		}

		title := "cross-platform"
		if key != "" {
			title += ": " + key
		}
		fmt.Fprint(out, report.SummaryMatrix(title, info.Unit, rows))

		for i := 0; i < len(rows); i++ {
			for j := i + 1; j < len(rows); j++ {
				a, b := rows[i].Platform, rows[j].Platform
				fmt.Fprint(out, report.ComparisonBlock(a, b, stats.Compare(values[a], values[b])))
			}
		}

		if latex {
			caption := fmt.Sprintf("%s (%s)", info.Name, info.Unit)
			if key != "" {
				caption += ", " + key
			}
			label := "tab:" + info.Name
			fmt.Fprint(out, "\n"+report.LatexTable(caption, label, rows))
		}
	}
}

// sharedGroupKeys returns every group key appearing in at least one run,
// in sorted order, so platforms whose runs were partially interrupted
// still line up.
func sharedGroupKeys(runs []*platformRun, dimension string) []string {
	seen := make(map[string]bool)
	var keys []string

	for _, run := range runs {
		ds, ok := run.datasets[dimension]
		if !ok {
			continue
		}
		for _, key := range ds.GroupKeys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	sort.Strings(keys)
	return keys
}
