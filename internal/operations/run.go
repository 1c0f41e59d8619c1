package operations

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/opscart/dockerbench/internal/config"
	"github.com/opscart/dockerbench/internal/docker"
	"github.com/opscart/dockerbench/internal/harness"
	"github.com/opscart/dockerbench/internal/logging"
)

// RunOpts holds the options for the Run operation.
type RunOpts struct {
	// Platform labels this run; it becomes the run directory name and the
	// identifier the analyzer compares across.
	Platform string
	// Iterations overrides the configured trial count when > 0.
	Iterations int
	// OutputDir is the parent directory run directories are created under.
	OutputDir string
	// ConfigFile is an optional YAML parameter file.
	ConfigFile string
	// LogFile is an optional log destination; empty means stderr.
	LogFile string
	// Debug enables debug logging.
	Debug bool
}

// Run executes a full measurement run for one platform.
func Run(opts *RunOpts) error {
	logger := logging.NewLogger(os.Stderr, opts.Debug)
	if opts.LogFile != "" {
		var err error
		if logger, err = logging.NewFileLogger(opts.LogFile, opts.Debug); err != nil {
			return fmt.Errorf("initialise logging: %w", err)
		}
	}

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return err
		}
	}
	if opts.Iterations > 0 {
		cfg.Iterations = opts.Iterations
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	outDir := filepath.Join(opts.OutputDir, opts.Platform)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := harness.New(cfg, docker.New(logger), logger, outDir)

	if err := h.Run(ctx, opts.Platform); err != nil {
		return fmt.Errorf("run %s: %w", opts.Platform, err)
	}

	return nil
}
