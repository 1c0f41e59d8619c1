// Package harness sequences the measurement dimensions for a single
// platform run. Execution is strictly sequential: concurrent trials would
// share CPU, memory and storage with the subject under test and
// contaminate every measurement.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opscart/dockerbench/internal/clock"
	"github.com/opscart/dockerbench/internal/config"
	"github.com/opscart/dockerbench/internal/docker"
	"github.com/opscart/dockerbench/internal/sysinfo"
)

// Resource names the harness owns inside the collaborator. Everything
// here is removed at finalization, interrupted or not.
const (
	cpuContainer  = "dockerbench-cpu"
	seedContainer = "dockerbench-copyup-seed"
	copyupImage   = "dockerbench-copyup"
	writeVolume   = "dockerbench-write"
	metaVolume    = "dockerbench-meta"
)

// Harness runs all dimensions against the local Docker daemon and owns
// the run directory. One harness instance owns the runtime for the run's
// duration; running two concurrently is unsupported.
type Harness struct {
	cfg    *config.Config
	client *docker.Client
	log    *slog.Logger
	outDir string

	caps         sysinfo.Capabilities
	warnedCaches bool
}

// New creates a harness writing into outDir.
func New(cfg *config.Config, client *docker.Client, log *slog.Logger, outDir string) *Harness {
	return &Harness{
		cfg:    cfg,
		client: client,
		log:    log,
		outDir: outDir,
	}
}

// Run executes Setup, every dimension in catalog order, then Finalize.
//
// The only fatal condition is the daemon being unreachable at Setup. A
// dimension that cannot run is skipped and logged; a failed iteration
// becomes an invalid sample. Interruption is honored between iterations:
// collaborator resources are released and the partially-written stores
// stay intact.
func (h *Harness) Run(ctx context.Context, platform string) error {
	if err := h.setup(ctx, platform); err != nil {
		return err
	}

	runErr := h.measure(ctx)

	h.finalize(platform)

	return runErr
}

func (h *Harness) setup(ctx context.Context, platform string) error {
	if err := h.client.Ping(ctx); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	h.caps = sysinfo.Detect()
	h.log.Info("capabilities detected",
		"drop_caches", h.caps.DropCaches,
		"cgroup_v2", h.caps.CgroupV2,
		"unshare", h.caps.Unshare,
	)

	if err := os.MkdirAll(h.outDir, 0o755); err != nil {
		return fmt.Errorf("create run directory: %w", err)
	}

	descriptor := sysinfo.Collect(platform)
	if version, err := h.client.Version(ctx); err == nil {
		descriptor.DockerVersion = version
	}
	if err := descriptor.Write(h.outDir); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	// Pre-pull so the first warm trial is actually warm and pull latency
	// only shows up in the dimension that measures it.
	for _, image := range h.cfg.Images {
		if h.client.ImageExists(ctx, image) {
			continue
		}
		h.log.Info("pulling image", "image", image)
		if err := h.client.Pull(ctx, image); err != nil {
			return fmt.Errorf("setup: pull %s: %w", image, err)
		}
	}

	h.log.Info("run starting",
		"platform", platform,
		"iterations", h.cfg.Iterations,
		"clock", clock.Source(),
	)

	return nil
}

func (h *Harness) measure(ctx context.Context) error {
	for _, dim := range h.dimensions() {
		info := dim.Info()

		if skip, reason := dim.Skip(h.caps); skip {
			h.log.Warn("dimension skipped", "dimension", info.Name, "reason", reason)
			continue
		}

		h.log.Info("dimension starting", "dimension", info.Name)
		start := clock.Now()

		if err := h.runTrials(ctx, dim); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			// A dimension's failure never aborts the run.
			h.log.Error("dimension failed", "dimension", info.Name, "err", err)
			continue
		}

		h.log.Info("dimension done",
			"dimension", info.Name,
			"elapsed", clock.Since(start).Round(time.Millisecond),
		)
	}

	return ctx.Err()
}

// finalize releases collaborator resources and writes the qualitative
// observations file. It runs on a fresh context so an interrupted run
// still cleans up after itself.
func (h *Harness) finalize(platform string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, name := range []string{cpuContainer, seedContainer} {
		if err := h.client.RemoveContainer(ctx, name); err != nil {
			h.log.Debug("remove container", "name", name, "err", err)
		}
	}
	if err := h.client.RemoveImage(ctx, copyupImage); err != nil {
		h.log.Debug("remove image", "image", copyupImage, "err", err)
	}
	for _, name := range []string{writeVolume, metaVolume} {
		if err := h.client.RemoveVolume(ctx, name); err != nil {
			h.log.Debug("remove volume", "name", name, "err", err)
		}
	}

	if err := h.writeObservations(platform); err != nil {
		h.log.Warn("write observations", "err", err)
	}
}

func (h *Harness) dimensions() []Dimension {
	b := base{
		cfg:    h.cfg,
		client: h.client,
		log:    h.log,
		caps:   h.caps,
	}

	return []Dimension{
		&startupDimension{base: b},
		&copyupDimension{base: b},
		&cpuThrottleDimension{base: b},
		&writePerfDimension{base: b},
		&metadataDimension{base: b},
		&pullDimension{base: b},
		newNamespaceDimension(b),
	}
}

// writeObservations leaves a qualitative notes file alongside the data,
// pre-filled with the conditions that make measurements uncontrolled.
func (h *Harness) writeObservations(platform string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Observations: %s\n\n", platform)
	fmt.Fprintf(&b, "Collected %s.\n\n", time.Now().Format(time.RFC3339))
	b.WriteString("## Measurement conditions\n\n")

	if h.caps.DropCaches {
		b.WriteString("- page cache dropped before each cold-start trial\n")
	} else {
		b.WriteString("- page-cache invalidation UNAVAILABLE: cold-start cache state was uncontrolled\n")
	}
	if h.caps.CgroupV2 {
		b.WriteString("- CPU utilization read from cgroup v2 cpu.stat\n")
	} else {
		b.WriteString("- CPU utilization parsed from `docker stats` text (no cgroup v2)\n")
	}
	if !h.caps.Unshare {
		b.WriteString("- namespace-creation dimension skipped: unshare not available\n")
	}

	b.WriteString("\n## Notes\n\n(free text)\n")

	path := filepath.Join(h.outDir, "observations.md")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
