package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/voicerhq/voicer-deploy/internal/config"
	domain "github.com/voicerhq/voicer-deploy/internal/domain/deploy"
)

// Repository defines persistence operations for the deployment journal.
type Repository interface {
	Append(ctx context.Context, record *domain.Record) error
}

// FileRepository appends deployment records to a plain-text journal file,
// one human-readable line per completed run.
type FileRepository struct {
	// path is the filesystem location of the journal file.
	path string
	// mu serializes appends from a single process.
	mu sync.Mutex
}

// timestampLayout formats the journal timestamp for operators, not machines.
const timestampLayout = "2006-01-02 15:04:05"

// NewFileRepository creates a repository that appends to the journal at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Append writes one journal line for the record. The file is created on
// first use and only ever grows.
func (r *FileRepository) Append(_ context.Context, record *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	if _, err = file.WriteString(FormatLine(record)); err != nil {
		_ = file.Close()

		return fmt.Errorf("append journal entry: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}

	return nil
}

// FormatLine renders a record as a single journal line, newline included.
func FormatLine(record *domain.Record) string {
	return fmt.Sprintf("%s deployment completed: commit %s, services: %s, run %s\n",
		record.Timestamp.Format(timestampLayout),
		record.Commit,
		strings.Join(record.Services, ", "),
		record.RunID)
}
