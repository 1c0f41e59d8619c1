package harness

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/opscart/dockerbench/internal/baseline"
	"github.com/opscart/dockerbench/internal/clock"
	"github.com/opscart/dockerbench/internal/sample"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// namespaceDimension measures bare namespace-creation cost: unshare(1)
// spinning up mount, UTS, IPC, network and PID namespaces around a no-op,
// minus the cost of the no-op alone. This isolates the kernel's namespace
// setup from everything else a container runtime does and gives the lower
// bound the startup dimension is compared against.
type namespaceDimension struct {
	base

	run func(ctx context.Context, name string, args ...string) error
}

func newNamespaceDimension(b base) *namespaceDimension {
	return &namespaceDimension{
		base: b,
		run: func(ctx context.Context, name string, args ...string) error {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("%s: %w: %s", name, err, out)
			}
			return nil
		},
	}
}

func (d *namespaceDimension) Info() DimensionInfo { return catalogEntry("namespace-creation") }

func (d *namespaceDimension) Columns() []string {
	return []string{"iteration", "creation_ms", "valid"}
}

func (d *namespaceDimension) Cold() bool { return false }

func (d *namespaceDimension) Skip(caps sysinfo.Capabilities) (bool, string) {
	if !caps.Unshare {
		return true, "unshare not found in PATH"
	}
	return false, ""
}

func (d *namespaceDimension) Measure(ctx context.Context, iteration int) []sample.Sample {
	control, err := d.timed(ctx, "/bin/true")
	if err != nil {
		return []sample.Sample{sample.New(iteration, sample.Invalid(err.Error()))}
	}

	total, err := d.timed(ctx,
		"unshare", "--mount", "--uts", "--ipc", "--net", "--pid", "--fork", "/bin/true",
	)
	if err != nil {
		return []sample.Sample{sample.New(iteration, sample.Invalid(err.Error()))}
	}

	corrected := baseline.Correct(total, control)

	return []sample.Sample{sample.New(iteration, sample.Millis(corrected))}
}

func (d *namespaceDimension) timed(ctx context.Context, name string, args ...string) (time.Duration, error) {
	start := clock.Now()
	err := d.run(ctx, name, args...)
	return clock.Since(start), err
}
