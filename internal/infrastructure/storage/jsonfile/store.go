package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ontwatch/internal/logger"
)

// ErrNotFound reports that the backing file does not exist yet.
var ErrNotFound = errors.New("resource not found")

// CorruptError reports that the backing file exists but could not be
// decoded into the expected collection shape.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt resource %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Store persists one JSON collection as a single file. Save leaves the
// file either at its prior contents or at the new contents, never in
// between: it serializes to a temp sibling, syncs, writes a best-effort
// .bak copy, then renames over the target.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load decodes the whole collection into v. Callers decide what a
// missing or corrupt file means: ErrNotFound and *CorruptError are the
// only failure shapes besides raw I/O errors.
func (s *Store) Load(v interface{}) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptError{Path: s.path, Err: err}
	}

	return nil
}

// LoadOrEmpty is Load for collections where a missing or corrupt file
// degrades to the zero default. Corruption is logged, never surfaced.
func (s *Store) LoadOrEmpty(v interface{}) error {
	err := s.Load(v)
	if err == nil || errors.Is(err, ErrNotFound) {
		return nil
	}

	var corrupt *CorruptError
	if errors.As(err, &corrupt) {
		logger.Warn("Resource corrupt, falling back to empty collection",
			zap.String("path", s.path),
			zap.Error(corrupt.Err),
		)
		return nil
	}

	return err
}

// Save atomically replaces the collection on disk.
func (s *Store) Save(v interface{}) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", s.path, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp for %s: %w", s.path, err)
	}

	// Force to physical storage before the rename becomes visible.
	// A failed sync is best-effort: log and continue.
	if err := tmp.Sync(); err != nil {
		logger.Warn("fsync failed", zap.String("path", tmpPath), zap.Error(err))
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp for %s: %w", s.path, err)
	}

	// Secondary copy next to the primary. Failure must not fail the write.
	if err := os.WriteFile(s.path+".bak", data, 0o644); err != nil {
		logger.Warn("Failed to write backup copy", zap.String("path", s.path+".bak"), zap.Error(err))
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	return nil
}
