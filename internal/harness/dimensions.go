package harness

import (
	"context"
	"log/slog"
	"time"

	"github.com/opscart/dockerbench/internal/clock"
	"github.com/opscart/dockerbench/internal/config"
	"github.com/opscart/dockerbench/internal/docker"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// base carries what every dimension needs. Dimensions embed it and add
// their own state.
type base struct {
	cfg    *config.Config
	client *docker.Client
	log    *slog.Logger
	caps   sysinfo.Capabilities
}

// timedDocker invokes the collaborator and returns the monotonic elapsed
// time alongside its output. The elapsed time includes the runtime's fixed
// invocation overhead; dimensions that need the operation cost in
// isolation subtract a spawn-only control via the baseline corrector.
func (b *base) timedDocker(ctx context.Context, args ...string) (time.Duration, string, error) {
	start := clock.Now()
	out, err := b.client.Output(ctx, args...)
	return clock.Since(start), out, err
}

// primaryImage is the image used by dimensions that exercise the runtime
// rather than a particular image.
func (b *base) primaryImage() string {
	return b.cfg.Images[0]
}

// wait sleeps for d unless the run is interrupted first.
func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
