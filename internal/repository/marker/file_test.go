package marker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing"))
	commit, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Empty(t, commit)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns the same commit.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "last-deploy-commit")
	repo := NewFileRepository(file)

	require.NoError(t, repo.Save(context.Background(), "def456"))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "def456", got)

	// Marker is the entire file content plus a trailing newline.
	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "def456\n", string(contents))
}

// TestFileRepository_Load_TrimsWhitespace ensures hand-edited markers still load.
func TestFileRepository_Load_TrimsWhitespace(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "last-deploy-commit")
	require.NoError(t, os.WriteFile(file, []byte("  abc123\n\n"), 0o600))

	repo := NewFileRepository(file)
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc123", got)
}

// TestFileRepository_Load_EmptyFile treats a blank marker as not found.
func TestFileRepository_Load_EmptyFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "last-deploy-commit")
	require.NoError(t, os.WriteFile(file, []byte("\n"), 0o600))

	repo := NewFileRepository(file)
	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}
