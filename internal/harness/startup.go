package harness

import (
	"context"

	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// startupDimension measures container startup latency: the wall time of
// `docker run --rm IMAGE true` per configured image, once cold (page
// cache freshly dropped by the trial runner) and once warm (immediately
// after the cold run primed the caches).
type startupDimension struct {
	base
}

func (d *startupDimension) Info() DimensionInfo { return catalogEntry("startup-latency") }

func (d *startupDimension) Columns() []string {
	return []string{"iteration", "image", "mode", "startup_ms", "valid"}
}

func (d *startupDimension) Cold() bool { return true }

func (d *startupDimension) Skip(sysinfo.Capabilities) (bool, string) { return false, "" }

func (d *startupDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	samples := make([]sample.Sample, 0, 2*len(d.cfg.Images))

	for _, image := range d.cfg.Images {
		for _, mode := range []string{"cold", "warm"} {
			samples = append(samples, sample.New(
				iteration,
				d.startOnce(ctx, image),
				image, mode,
			))
		}
	}

	return samples
}

func (d *startupDimension) startOnce(ctx context.Context, image string) sample.Measurement {
	elapsed, _, err := d.timedDocker(ctx, "run", "--rm", image, "true")
	if err != nil {
		return sample.Invalid(err.Error())
	}
	return sample.Millis(elapsed)
}
