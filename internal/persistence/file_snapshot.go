package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// FileSnapshotBackend stores the complaint collection as a JSON file,
// written atomically via rename so a crash mid-write never corrupts the
// previous snapshot.
type FileSnapshotBackend struct {
	path string
}

// NewFileSnapshotBackend uses the given file path; parent directories are
// created on first save.
func NewFileSnapshotBackend(path string) *FileSnapshotBackend {
	return &FileSnapshotBackend{path: path}
}

func (b *FileSnapshotBackend) Load(ctx context.Context) ([]domain.Complaint, bool, error) {
	blob, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot file %s: %w", b.path, err)
	}
	var complaints []domain.Complaint
	if err := json.Unmarshal(blob, &complaints); err != nil {
		return nil, false, fmt.Errorf("decode snapshot file %s: %w", b.path, err)
	}
	return complaints, true, nil
}

func (b *FileSnapshotBackend) Save(ctx context.Context, complaints []domain.Complaint) error {
	blob, err := json.MarshalIndent(complaints, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot file %s: %w", b.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write snapshot file %s: %w", b.path, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace snapshot file %s: %w", b.path, err)
	}
	return nil
}
