package marker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/voicerhq/voicer-deploy/internal/config"
)

// Repository defines persistence operations for the deployed-commit marker.
type Repository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, commit string) error
}

// FileRepository persists the last deployed commit as the entire content of
// a plain-text file, one identifier and a trailing newline.
type FileRepository struct {
	// path is the filesystem location of the marker file.
	path string
	// mu protects concurrent access to the marker file.
	mu sync.Mutex
}

// ErrNotFound is returned when the marker file does not exist yet.
var ErrNotFound = errors.New("commit marker not found")

// NewFileRepository creates a repository that reads/writes the marker at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the last deployed commit from disk.
func (r *FileRepository) Load(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("read commit marker: %w", err)
	}

	commit := strings.TrimSpace(string(contents))
	if commit == "" {
		return "", ErrNotFound
	}

	return commit, nil
}

// Save overwrites the marker with the provided commit identifier.
func (r *FileRepository) Save(_ context.Context, commit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := []byte(commit + "\n")
	if err := os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write commit marker: %w", err)
	}

	return nil
}
