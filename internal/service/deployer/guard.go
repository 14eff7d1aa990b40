package deployer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/voicerhq/voicer-deploy/internal/logger"
)

// errDeployerAlreadyRunning indicates a concurrent deployment holds the guard.
var errDeployerAlreadyRunning = errors.New("another deployment is already running")

// acquireGuard refuses to start while another deployment run is alive.
//
// The guard is a marker file: if it exists and a second deployer process is
// found in the process table, the run aborts; if it exists with no live
// owner it is treated as stale and removed. The returned release function
// deletes the marker.
func acquireGuard(ctx context.Context, path string) (func(), error) {
	path = filepath.Clean(path)

	if _, err := os.Stat(path); err == nil {
		running, runErr := anotherDeployerRunning()
		if runErr != nil {
			return nil, fmt.Errorf("inspect process table: %w", runErr)
		}

		if running {
			return nil, errDeployerAlreadyRunning
		}

		logger.WarnKV(ctx, "Stale guard marker found, removing it", "path", path)

		if err = os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale guard marker: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("inspect guard marker: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create guard marker: %w", err)
	}

	if err = file.Close(); err != nil {
		return nil, fmt.Errorf("close guard marker: %w", err)
	}

	release := func() {
		if err := os.Remove(path); err != nil {
			logger.WarnKV(ctx, "Unable to remove guard marker", "path", path, "error", err)
		}
	}

	return release, nil
}

// anotherDeployerRunning scans the process table for a second process with
// this executable's name.
func anotherDeployerRunning() (bool, error) {
	self, err := os.Executable()
	if err != nil {
		return false, err
	}

	executable := filepath.Base(self)

	processes, err := ps.Processes()
	if err != nil {
		return false, err
	}

	thisProcessID := os.Getpid()

	for _, process := range processes {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == executable {
			return true, nil
		}
	}

	return false, nil
}
