package cmdrunner

import (
	"context"
	"os/exec"
)

// Runner executes an external command and returns its combined output.
// Collaborator packages depend on this interface so tests can substitute
// a fake instead of spawning processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec, blocking until they finish.
// No timeout is imposed here; cancellation comes from the context.
type ExecRunner struct {
	// Dir is the working directory for every command, empty for inherited.
	Dir string
}

// NewExecRunner creates a runner executing commands in the provided directory.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// Run executes the command and returns combined stdout and stderr.
// The output is returned even when the command fails, so callers can
// surface collaborator diagnostics alongside the error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	return cmd.CombinedOutput()
}
