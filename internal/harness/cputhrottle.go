package harness

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// cpuThrottleDimension measures CPU-throttling accuracy: how close a
// cpu-limited busy loop's observed utilization lands to its configured
// share. Utilization is read from the container's cgroup v2 cpu.stat when
// the unified hierarchy is available, so the measurement does not depend
// on the runtime's own sampling; otherwise it falls back to parsing
// `docker stats` output.
type cpuThrottleDimension struct {
	base
}

func (d *cpuThrottleDimension) Info() DimensionInfo { return catalogEntry("cpu-throttling") }

func (d *cpuThrottleDimension) Columns() []string {
	return []string{"iteration", "target_pct", "measured_pct", "valid"}
}

func (d *cpuThrottleDimension) Cold() bool { return false }

func (d *cpuThrottleDimension) Skip(sysinfo.Capabilities) (bool, string) { return false, "" }

func (d *cpuThrottleDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	target := d.cfg.CPUTargetPct
	label := strconv.FormatFloat(target, 'f', 0, 64)

	m := d.measureOnce(ctx, target)

	return []sample.Sample{sample.New(iteration, m, label)}
}

func (d *cpuThrottleDimension) measureOnce(ctx context.Context, target float64) sample.Measurement {
	_ = d.client.RemoveContainer(ctx, cpuContainer) // stale leftovers

	id, err := d.client.Output(ctx,
		"run", "-d", "--rm",
		"--name", cpuContainer,
		fmt.Sprintf("--cpus=%.2f", target/100),
		d.primaryImage(),
		"sh", "-c", "while :; do :; done",
	)
	if err != nil {
		return sample.Invalid(err.Error())
	}
	defer d.client.RemoveContainer(ctx, cpuContainer)

	// Let the limiter settle before sampling.
	wait(ctx, d.cfg.CPUWindow())
	if ctx.Err() != nil {
		return sample.Invalid("interrupted")
	}

	if d.caps.CgroupV2 {
		if pct, err := d.cgroupUtilization(ctx, id); err == nil {
			return sample.Valid(pct)
		}
	}

	pct, err := d.statsUtilization(ctx)
	if err != nil {
		return sample.Invalid(err.Error())
	}
	return sample.Valid(pct)
}

// cgroupUtilization derives utilization from two cpu.stat readings over
// the configured window.
func (d *cpuThrottleDimension) cgroupUtilization(ctx context.Context, containerID string) (float64, error) {
	before, err := sysinfo.ContainerCPUUsage(containerID)
	if err != nil {
		return 0, err
	}

	wait(ctx, d.cfg.CPUWindow())
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	after, err := sysinfo.ContainerCPUUsage(containerID)
	if err != nil {
		return 0, err
	}

	return float64(after-before) / float64(d.cfg.CPUWindow()) * 100, nil
}

// statsUtilization parses the percentage text of `docker stats`.
func (d *cpuThrottleDimension) statsUtilization(ctx context.Context) (float64, error) {
	out, err := d.client.Output(ctx,
		"stats", "--no-stream", "--format", "{{.CPUPerc}}", cpuContainer,
	)
	if err != nil {
		return 0, err
	}

	return parseCPUPerc(out)
}

func parseCPUPerc(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")

	pct, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable cpu percentage %q", s)
	}
	if pct < 0 {
		return 0, fmt.Errorf("negative cpu percentage %q", s)
	}

	return pct, nil
}
