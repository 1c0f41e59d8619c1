package harness

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// Dimension is one measurement dimension. Implementations absorb their own
// per-iteration failures: Measure always returns one sample per
// (iteration, label group) attempt, flagged invalid when the measurement
// could not be taken.
type Dimension interface {
	Info() DimensionInfo

	// Columns is the fixed store schema, "iteration" first, "valid" last.
	Columns() []string

	// Cold dimensions get a best-effort page-cache invalidation before
	// every iteration.
	Cold() bool

	// Skip reports whether the host lacks something this dimension
	// cannot run without, and why.
	Skip(caps sysinfo.Capabilities) (skip bool, reason string)

	Measure(ctx context.Context, iteration int) []sample.Sample
}

// runTrials executes one dimension for the configured iteration count,
// appending every sample to the dimension's store as it is produced.
// Iteration i is fully measured and persisted before i+1 begins; external
// interruption is honored between iterations, never mid-iteration.
func (h *Harness) runTrials(ctx context.Context, dim Dimension) error {
	info := dim.Info()

	store, err := sample.NewStore(
		filepath.Join(h.outDir, info.Filename),
		dim.Columns(),
	)
	if err != nil {
		return fmt.Errorf("open store for %s: %w", info.Name, err)
	}
	defer store.Close()

	for i := 1; i <= h.cfg.Iterations; i++ {
		if ctx.Err() != nil {
			h.log.Info("interrupted", "dimension", info.Name, "completed", i-1)
			return ctx.Err()
		}

		if dim.Cold() {
			h.invalidateCaches()
		}

		for _, smp := range dim.Measure(ctx, i) {
			if !smp.M.Valid {
				h.log.Warn("invalid sample",
					"dimension", info.Name,
					"iteration", i,
					"reason", smp.M.Reason,
				)
			}
			if err := store.Append(smp); err != nil {
				return fmt.Errorf("append sample for %s: %w", info.Name, err)
			}
		}

		h.log.Debug("iteration done", "dimension", info.Name, "iteration", i)

		// Inter-iteration quiescence, so one trial's cleanup does not
		// contend with the next trial's measurement.
		if i < h.cfg.Iterations && h.cfg.Settle() > 0 {
			wait(ctx, h.cfg.Settle())
		}
	}

	return nil
}

// invalidateCaches drops the kernel page cache before a cold trial. Best
// effort: without the capability, cache state becomes an uncontrolled
// variable and is reported as such, but the trial still runs.
func (h *Harness) invalidateCaches() {
	if !h.caps.DropCaches {
		if !h.warnedCaches {
			h.warnedCaches = true
			h.log.Warn("page-cache invalidation unavailable; cold-start cache state is uncontrolled")
		}
		return
	}

	if err := sysinfo.DropPageCache(); err != nil {
		h.log.Warn("drop page cache", "err", err)
	}
}

