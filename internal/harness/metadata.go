package harness

import (
	"context"
	"fmt"

	"github.com/opscart/dockerbench/internal/baseline"
	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// metadataDimension measures small-file metadata throughput: a burst of
// file creations inside the container, on the overlay layer and on a
// named volume. The per-trial cost is the timed burst minus a spawn-only
// control, so the runtime's invocation overhead cancels out.
type metadataDimension struct {
	base

	prepared bool
	prepErr  error
}

func (d *metadataDimension) Info() DimensionInfo { return catalogEntry("metadata-operations") }

func (d *metadataDimension) Columns() []string {
	return []string{"iteration", "target", "create_ms", "valid"}
}

func (d *metadataDimension) Cold() bool { return true }

func (d *metadataDimension) Skip(sysinfo.Capabilities) (bool, string) { return false, "" }

func (d *metadataDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	if err := d.prepare(ctx); err != nil {
		m := sample.Invalid(fmt.Sprintf("volume unavailable: %v", err))
		return []sample.Sample{
			sample.New(iteration, m, "overlay"),
			sample.New(iteration, m, "volume"),
		}
	}

	overlay := d.burstOnce(ctx, "/bench")
	volume := d.burstOnce(ctx, "/data", "-v", metaVolume+":/data")

	// The volume keeps its contents between iterations; the overlay dies
	// with its container. Cleared untimed so the next burst starts empty.
	if volume.Valid {
		_ = d.client.Run(ctx,
			"run", "--rm", "-v", metaVolume+":/data", d.primaryImage(),
			"sh", "-c", "rm -rf /data/meta",
		)
	}

	return []sample.Sample{
		sample.New(iteration, overlay, "overlay"),
		sample.New(iteration, volume, "volume"),
	}
}

func (d *metadataDimension) burstOnce(ctx context.Context, dir string, mountArgs ...string) sample.Measurement {
	control, _, err := d.timedDocker(ctx,
		append(append([]string{"run", "--rm"}, mountArgs...), d.primaryImage(), "true")...,
	)
	if err != nil {
		return sample.Invalid(err.Error())
	}

	script := fmt.Sprintf(
		"mkdir -p %[1]s/meta && i=0; while [ $i -lt %[2]d ]; do touch %[1]s/meta/f$i; i=$((i+1)); done",
		dir, d.cfg.MetadataFiles,
	)

	total, _, err := d.timedDocker(ctx,
		append(append([]string{"run", "--rm"}, mountArgs...), d.primaryImage(), "sh", "-c", script)...,
	)
	if err != nil {
		return sample.Invalid(err.Error())
	}

	return sample.Millis(baseline.Correct(total, control))
}

func (d *metadataDimension) prepare(ctx context.Context) error {
	if d.prepared {
		return d.prepErr
	}
	d.prepared = true

	_ = d.client.RemoveVolume(context.WithoutCancel(ctx), metaVolume)
	d.prepErr = d.client.CreateVolume(ctx, metaVolume)

	return d.prepErr
}
