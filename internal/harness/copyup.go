package harness

import (
	"context"
	"fmt"

	"github.com/opscart/dockerbench/internal/baseline"
	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// copyupDimension measures overlay copy-up: the cost of materializing a
// file from a read-only image layer into the writable layer on first
// modification. A seed image carrying the payload file in a lower layer is
// committed once; each trial then modifies one byte of it, which forces
// the kernel to copy the whole file up.
//
// The images involved only carry second-resolution timers, so both the
// control (spawn-only) and the operation are timed from outside and the
// difference is taken by the baseline corrector.
type copyupDimension struct {
	base

	prepared bool
	prepErr  error
}

func (d *copyupDimension) Info() DimensionInfo { return catalogEntry("copyup-overhead") }

func (d *copyupDimension) Columns() []string {
	return []string{"iteration", "copyup_ms", "valid"}
}

func (d *copyupDimension) Cold() bool { return true }

func (d *copyupDimension) Skip(sysinfo.Capabilities) (bool, string) { return false, "" }

func (d *copyupDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	if err := d.prepare(ctx); err != nil {
		return []sample.Sample{sample.New(
			iteration,
			sample.Invalid(fmt.Sprintf("seed image unavailable: %v", err)),
		)}
	}

	control, _, err := d.timedDocker(ctx, "run", "--rm", copyupImage, "true")
	if err != nil {
		return []sample.Sample{sample.New(iteration, sample.Invalid(err.Error()))}
	}

	// One byte into the seeded file is enough: the write path copies the
	// entire lower-layer file into the upper layer first.
	total, _, err := d.timedDocker(ctx,
		"run", "--rm", copyupImage,
		"dd", "if=/dev/zero", "of=/seed.bin", "bs=1", "count=1", "conv=notrunc",
	)
	if err != nil {
		return []sample.Sample{sample.New(iteration, sample.Invalid(err.Error()))}
	}

	corrected := baseline.Correct(total, control)

	return []sample.Sample{sample.New(iteration, sample.Millis(corrected))}
}

// prepare commits the seed image on first use. A failed preparation is
// remembered so every remaining iteration records the same deficiency
// instead of retrying a broken setup.
func (d *copyupDimension) prepare(ctx context.Context) error {
	if d.prepared {
		return d.prepErr
	}
	d.prepared = true

	d.prepErr = func() error {
		_ = d.client.RemoveContainer(ctx, seedContainer)

		seed := fmt.Sprintf("dd if=/dev/zero of=/seed.bin bs=1M count=%d 2>/dev/null", d.cfg.WriteMB)
		if err := d.client.Run(ctx,
			"run", "--name", seedContainer, d.primaryImage(), "sh", "-c", seed,
		); err != nil {
			return fmt.Errorf("seed payload: %w", err)
		}

		if err := d.client.Run(ctx, "commit", seedContainer, copyupImage); err != nil {
			return fmt.Errorf("commit seed image: %w", err)
		}

		if err := d.client.RemoveContainer(ctx, seedContainer); err != nil {
			return fmt.Errorf("remove seed container: %w", err)
		}

		return nil
	}()

	return d.prepErr
}
