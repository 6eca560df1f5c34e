package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/webmd"
)

// Ensure FileStore implements webmd.PageStore at compile time.
var _ webmd.PageStore = (*FileStore)(nil)

// FileStore implements webmd.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page into the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *webmd.Page) error {
	return writePage(s.tempDir(), page)
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
