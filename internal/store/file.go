package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// snapshot is the on-disk shape of the file store.
type snapshot struct {
	Sessions     []feedback.Session     `json:"sessions"`
	Observations []feedback.Observation `json:"observations"`
}

// FileStore is the local fallback backend: the full data set lives in memory
// and is rewritten to a JSON file on every mutation. Writes go through a temp
// file and rename so a crash never leaves a torn snapshot.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	data   snapshot
	logger *zap.Logger
}

// NewFileStore opens (or creates) the snapshot file at path.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file path is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fs := &FileStore{path: path, logger: logger}

	content, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run; an empty snapshot is written on first mutation.
	case err != nil:
		return nil, fmt.Errorf("failed to open store file: %w", err)
	default:
		if err := json.Unmarshal(content, &fs.data); err != nil {
			return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
		}
	}

	logger.Info("opened file store",
		zap.String("path", path),
		zap.Int("sessions", len(fs.data.Sessions)),
		zap.Int("observations", len(fs.data.Observations)),
	)
	return fs, nil
}

// ListSessions implements Store.
func (fs *FileStore) ListSessions(_ context.Context) ([]feedback.Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]feedback.Session, len(fs.data.Sessions))
	copy(out, fs.data.Sessions)
	return out, nil
}

// ListObservations implements Store. The log is kept newest-first.
func (fs *FileStore) ListObservations(_ context.Context) ([]feedback.Observation, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]feedback.Observation, len(fs.data.Observations))
	copy(out, fs.data.Observations)
	return out, nil
}

// InsertSession implements Store.
func (fs *FileStore) InsertSession(_ context.Context, s feedback.Session) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data.Sessions = append(fs.data.Sessions, s)
	return fs.persist()
}

// InsertObservation implements Store. New observations are prepended so the
// stored order stays newest-first.
func (fs *FileStore) InsertObservation(_ context.Context, o feedback.Observation) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data.Observations = append([]feedback.Observation{o}, fs.data.Observations...)
	return fs.persist()
}

// UpdateSession implements Store.
func (fs *FileStore) UpdateSession(_ context.Context, s feedback.Session) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.data.Sessions {
		if fs.data.Sessions[i].ID == s.ID {
			fs.data.Sessions[i] = s
			return fs.persist()
		}
	}
	return fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
}

// DeleteSession implements Store. Cascades to the session's observations.
func (fs *FileStore) DeleteSession(_ context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	found := false
	sessions := fs.data.Sessions[:0]
	for _, s := range fs.data.Sessions {
		if s.ID == id {
			found = true
			continue
		}
		sessions = append(sessions, s)
	}
	if !found {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	fs.data.Sessions = sessions

	observations := fs.data.Observations[:0]
	for _, o := range fs.data.Observations {
		if o.SessionID == id {
			continue
		}
		observations = append(observations, o)
	}
	fs.data.Observations = observations

	return fs.persist()
}

// Close implements Store. The snapshot is already on disk; nothing to flush.
func (fs *FileStore) Close() error { return nil }

// persist rewrites the snapshot atomically. Caller must hold the write lock.
func (fs *FileStore) persist() error {
	data, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".earshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
