// Package command provides an external tool runner adapter implementation.
package command

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"modem-rotatord/internal/port"
)

// Runner is an adapter that implements the CommandRunner port using os/exec.
// Every invocation carries its own timeout so a hung tool cannot hold the
// rotation lock beyond its allotted time.
type Runner struct{}

// Ensure Runner implements the CommandRunner port
var _ port.CommandRunner = (*Runner)(nil)

// NewRunner creates a new command runner adapter.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the named binary with the given arguments and returns its
// combined output. A missing binary surfaces as an error wrapping
// exec.ErrNotFound; a timeout kills the process and surfaces as a non-nil
// error from the killed command.
func (r *Runner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("%s failed: %w: %s", name, err, output)
	}
	return output, nil
}
