// Package docker is a thin wrapper around the docker command-line surface.
// The daemon is treated as a black box returning text; everything here is
// pass-through invocation plus enough error context to record a failed
// trial.
package docker

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// maxErrOutput caps how much collaborator output is carried in an error.
const maxErrOutput = 2000

type execer func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client invokes the docker CLI. Commands go through an exec seam so tests
// can substitute a fake collaborator.
type Client struct {
	bin  string
	log  *slog.Logger
	exec execer
}

// New creates a Client using the docker binary on PATH.
func New(log *slog.Logger) *Client {
	return &Client{
		bin: "docker",
		log: log,
		exec: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// NewWithExec creates a Client whose invocations go through fn instead of
// a real binary. For tests.
func NewWithExec(log *slog.Logger, fn func(ctx context.Context, name string, args ...string) ([]byte, error)) *Client {
	return &Client{bin: "docker", log: log, exec: fn}
}

// Ping checks that the daemon is responding. A failure here is the one
// systemic condition that aborts a run before any dimension executes.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Output(ctx, "info", "--format", "{{.ServerVersion}}"); err != nil {
		return fmt.Errorf("docker daemon not responding: %w", err)
	}
	return nil
}

// Version returns the daemon's server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.Output(ctx, "version", "--format", "{{.Server.Version}}")
	if err != nil {
		return "", fmt.Errorf("docker version: %w", err)
	}
	return out, nil
}

// Run invokes `docker ARGS...`, discarding output.
func (c *Client) Run(ctx context.Context, args ...string) error {
	_, err := c.Output(ctx, args...)
	return err
}

// Output invokes `docker ARGS...` and returns the combined output,
// whitespace-trimmed. On failure the output is folded into the error, so
// a failed trial's record explains itself.
func (c *Client) Output(ctx context.Context, args ...string) (string, error) {
	c.log.Debug("docker", "args", strings.Join(args, " "))

	out, err := c.exec(ctx, c.bin, args...)
	if err != nil {
		return "", fmt.Errorf("docker %s: %w: %s", args[0], err, truncate(string(out)))
	}

	return strings.TrimSpace(string(out)), nil
}

// Pull pulls an image.
func (c *Client) Pull(ctx context.Context, image string) error {
	return c.Run(ctx, "pull", image)
}

// ImageExists reports whether an image is present locally.
func (c *Client) ImageExists(ctx context.Context, image string) bool {
	return c.Run(ctx, "image", "inspect", image) == nil
}

// RemoveImage removes an image. Missing images are not an error.
func (c *Client) RemoveImage(ctx context.Context, image string) error {
	if !c.ImageExists(ctx, image) {
		return nil
	}
	return c.Run(ctx, "rmi", "-f", image)
}

// RemoveContainer force-removes a container by name or ID.
func (c *Client) RemoveContainer(ctx context.Context, name string) error {
	return c.Run(ctx, "rm", "-f", name)
}

// CreateVolume creates a named volume.
func (c *Client) CreateVolume(ctx context.Context, name string) error {
	return c.Run(ctx, "volume", "create", name)
}

// RemoveVolume force-removes a named volume.
func (c *Client) RemoveVolume(ctx context.Context, name string) error {
	return c.Run(ctx, "volume", "rm", "-f", name)
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrOutput {
		return s[:maxErrOutput] + "…[truncated]"
	}
	return s
}
