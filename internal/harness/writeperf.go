package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/opscart/dockerbench/internal/baseline"
	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
	"github.com/opscart/dockerbench/internal/units"
)

// writePerfDimension measures sequential write throughput through the
// container's writable overlay layer and, as a contrast target, through a
// bind-free named volume. The rate is taken from dd's own transfer
// summary when it prints one; otherwise it is derived from the corrected
// wall time.
type writePerfDimension struct {
	base

	prepared bool
	prepErr  error
}

func (d *writePerfDimension) Info() DimensionInfo { return catalogEntry("write-performance") }

func (d *writePerfDimension) Columns() []string {
	return []string{"iteration", "target", "throughput_mbs", "valid"}
}

func (d *writePerfDimension) Cold() bool { return true }

func (d *writePerfDimension) Skip(sysinfo.Capabilities) (bool, string) { return false, "" }

func (d *writePerfDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	if err := d.prepare(ctx); err != nil {
		m := sample.Invalid(fmt.Sprintf("volume unavailable: %v", err))
		return []sample.Sample{
			sample.New(iteration, m, "overlay"),
			sample.New(iteration, m, "volume"),
		}
	}

	return []sample.Sample{
		sample.New(iteration, d.writeOnce(ctx), "overlay"),
		sample.New(iteration, d.writeOnce(ctx, "-v", writeVolume+":/data"), "volume"),
	}
}

func (d *writePerfDimension) writeOnce(ctx context.Context, mountArgs ...string) sample.Measurement {
	control, _, err := d.timedDocker(ctx,
		append(append([]string{"run", "--rm"}, mountArgs...), d.primaryImage(), "true")...,
	)
	if err != nil {
		return sample.Invalid(err.Error())
	}

	dir := "/bench"
	if len(mountArgs) > 0 {
		dir = "/data"
	}

	script := fmt.Sprintf(
		"mkdir -p %[1]s && dd if=/dev/zero of=%[1]s/payload bs=1M count=%[2]d oflag=direct 2>&1 || "+
			"dd if=/dev/zero of=%[1]s/payload bs=1M count=%[2]d 2>&1",
		dir, d.cfg.WriteMB,
	)

	total, out, err := d.timedDocker(ctx,
		append(append([]string{"run", "--rm"}, mountArgs...), d.primaryImage(), "sh", "-c", script)...,
	)
	if err != nil {
		return sample.Invalid(err.Error())
	}

	if rate, ok := ddRate(out); ok {
		return sample.Valid(rate)
	}

	corrected := baseline.Correct(total, control)
	if corrected <= 0 {
		return sample.Invalid("write finished within invocation overhead")
	}

	return sample.Valid(float64(d.cfg.WriteMB) / corrected.Seconds())
}

func (d *writePerfDimension) prepare(ctx context.Context) error {
	if d.prepared {
		return d.prepErr
	}
	d.prepared = true

	_ = d.client.RemoveVolume(context.WithoutCancel(ctx), writeVolume)
	d.prepErr = d.client.CreateVolume(ctx, writeVolume)

	return d.prepErr
}

// ddRate extracts the transfer rate from dd's summary line, e.g.
//
//	104857600 bytes (105 MB, 100 MiB) copied, 0.22 s, 468.1 MB/s
//
// The rate is the final comma-separated field. busybox dd omits it, in
// which case callers fall back to wall-time division.
func ddRate(out string) (float64, bool) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "copied") {
			continue
		}

		fields := strings.Split(line, ",")
		last := strings.TrimSpace(fields[len(fields)-1])
		if rate, ok := units.ParseThroughput(last); ok {
			return rate, true
		}
	}

	return 0, false
}
