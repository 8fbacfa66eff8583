package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webext"
)

// Ensure FileStore implements webext.NamespaceWriter at compile time.
var _ webext.NamespaceWriter = (*FileStore)(nil)

// FileStore writes one JSON file per namespace with atomic update semantics.
// Records are saved to a temporary directory, then moved atomically on
// Commit.
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

// RecordFileName returns the file name a namespace is stored under.
func RecordFileName(name string) string {
	return name + ".json"
}

// SaveNamespace writes rec as indented JSON, replacing an earlier record
// with the same name.
func (s *FileStore) SaveNamespace(ctx context.Context, rec *webext.NamespaceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := webext.ValidateName(rec.Name); err != nil {
		return err
	}
	if strings.ContainsAny(rec.Name, `/\`) || rec.Name == "." || rec.Name == ".." {
		return webext.Errorf(webext.EINVALID, "path traversal in namespace name %q", rec.Name)
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), RecordFileName(rec.Name)), data, 0644)
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
