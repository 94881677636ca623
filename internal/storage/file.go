package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per learner and kind under dir, named
// "<learner>_<kind>.json". Writes go to a temp file that is renamed over the
// target, so a crash mid-write leaves the previous version intact.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(learnerID string, kind Kind) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", learnerID, kind))
}

func (s *FileStore) Load(ctx context.Context, learnerID string, kind Kind, dst any) (bool, error) {
	if err := ValidateLearnerID(learnerID); err != nil {
		return false, err
	}

	data, err := os.ReadFile(s.path(learnerID, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s document: %w", kind, err)
	}

	return decodeDocument(data, learnerID, kind, dst), nil
}

func (s *FileStore) Save(ctx context.Context, learnerID string, kind Kind, v any) error {
	if err := ValidateLearnerID(learnerID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s document: %w", kind, err)
	}

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".%s_%s-*.tmp", learnerID, kind))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s document: %w", kind, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s document: %w", kind, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s document: %w", kind, err)
	}

	if err := os.Rename(tmpName, s.path(learnerID, kind)); err != nil {
		return fmt.Errorf("replace %s document: %w", kind, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
