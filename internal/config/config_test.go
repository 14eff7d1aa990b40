package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and default filling for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing install root.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)

	// Negative restart pause.
	cfg = &Config{
		InstallRoot:  "/opt/voicer",
		RestartPause: -time.Second,
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Minimal config gets defaults.
	cfg = &Config{
		InstallRoot: "/opt/voicer",
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultRemote, cfg.Remote)
	require.Equal(t, DefaultBranch, cfg.Branch)
	require.Equal(t, DefaultManifest, cfg.Manifest)
	require.Equal(t, DefaultPip, cfg.Pip)
	require.Equal(t, DefaultServices, cfg.Services)
	require.Equal(t, DefaultMarkerFilename, cfg.MarkerFile)
	require.Equal(t, DefaultJournalFilename, cfg.JournalFile)
	require.Equal(t, DefaultRestartPause, cfg.RestartPause)
	require.Empty(t, cfg.GuardMarker)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		InstallRoot: "/srv/voicer",
		Branch:      "production",
		Services:    []string{"voicer-main"},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.InstallRoot, loaded.InstallRoot)
	require.Equal(t, "production", loaded.Branch)
	require.Equal(t, []string{"voicer-main"}, loaded.Services)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFile verifies a readable error for an absent settings file.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
