package deployer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAcquireGuard_CreatesAndReleases verifies the marker lifecycle.
func TestAcquireGuard_CreatesAndReleases(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deploy.lock")

	release, err := acquireGuard(context.Background(), path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	release()

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestAcquireGuard_StaleMarkerRecovered verifies a leftover marker with no
// live owner is removed and the run proceeds.
func TestAcquireGuard_StaleMarkerRecovered(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deploy.lock")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	// The test binary has a unique name, so no second deployer process exists
	// and the marker counts as stale.
	release, err := acquireGuard(context.Background(), path)
	require.NoError(t, err)

	release()
}
