package harness

import (
	"context"
	"fmt"

	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// pullDimension measures registry pull latency per configured image. Each
// trial removes the local copy first so the full transfer and unpack are
// on the clock; an image that cannot be removed (a container still holds
// it) yields an invalid sample rather than a silently-warm pull.
type pullDimension struct {
	base
}

func (d *pullDimension) Info() DimensionInfo { return catalogEntry("image-pull-time") }

func (d *pullDimension) Columns() []string {
	return []string{"iteration", "image", "pull_ms", "valid"}
}

func (d *pullDimension) Cold() bool { return true }

func (d *pullDimension) Skip(sysinfo.Capabilities) (bool, string) { return false, "" }

func (d *pullDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	samples := make([]sample.Sample, 0, len(d.cfg.Images))

	for _, image := range d.cfg.Images {
		samples = append(samples, sample.New(iteration, d.pullOnce(ctx, image), image))
	}

	return samples
}

func (d *pullDimension) pullOnce(ctx context.Context, image string) sample.Measurement {
	if err := d.client.RemoveImage(ctx, image); err != nil {
		return sample.Invalid(fmt.Sprintf("remove local copy: %v", err))
	}

	elapsed, _, err := d.timedDocker(ctx, "pull", image)
	if err != nil {
		return sample.Invalid(err.Error())
	}

	return sample.Millis(elapsed)
}
