package systemd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/voicerhq/voicer-deploy/internal/cmdrunner"
)

// Manager drives systemctl to reload, restart and inspect managed units.
type Manager struct {
	// run executes systemctl subprocesses.
	run cmdrunner.Runner
}

// activeState is the is-active output reported by a running unit.
const activeState = "active"

// NewManager creates a systemd manager on top of the provided runner.
func NewManager(runner cmdrunner.Runner) *Manager {
	return &Manager{run: runner}
}

// ReloadUnits reloads the systemd unit definitions (daemon-reload) so that
// edited unit files are picked up before restarts.
func (m *Manager) ReloadUnits(ctx context.Context) error {
	output, err := m.run.Run(ctx, "systemctl", "daemon-reload")
	if err != nil {
		return fmt.Errorf("systemctl daemon-reload: %s: %w", strings.TrimSpace(string(output)), err)
	}

	return nil
}

// Restart restarts the named unit, blocking until systemctl returns.
func (m *Manager) Restart(ctx context.Context, unit string) error {
	output, err := m.run.Run(ctx, "systemctl", "restart", unit)
	if err != nil {
		return fmt.Errorf("systemctl restart %s: %s: %w", unit, strings.TrimSpace(string(output)), err)
	}

	return nil
}

// IsActive reports whether the named unit is currently active.
// systemctl exits non-zero for inactive units; that is a negative answer,
// not an error.
func (m *Manager) IsActive(ctx context.Context, unit string) (bool, error) {
	output, err := m.run.Run(ctx, "systemctl", "is-active", unit)

	state := strings.TrimSpace(string(output))
	if state == activeState {
		return true, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && state == "" {
			return false, fmt.Errorf("systemctl is-active %s: %w", unit, err)
		}
	}

	return false, nil
}

// Status returns the unit's status detail for diagnostics. systemctl exits
// non-zero for failed or inactive units, so exit errors are ignored as long
// as there is output to show.
func (m *Manager) Status(ctx context.Context, unit string) (string, error) {
	output, err := m.run.Run(ctx, "systemctl", "status", "--no-pager", unit)

	detail := strings.TrimSpace(string(output))
	if detail != "" {
		return detail, nil
	}

	if err != nil {
		return "", fmt.Errorf("systemctl status %s: %w", unit, err)
	}

	return detail, nil
}
