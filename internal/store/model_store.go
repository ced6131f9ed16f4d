package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"quantumtie/internal/domain"
)

// ModelFileStore caches noise-model records as one JSON file each.
type ModelFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewModelFileStore returns a ModelFileStore rooted at dir.
func NewModelFileStore(dir string) *ModelFileStore {
	return &ModelFileStore{dir: dir}
}

// modelFile normalises a record name to a base file name with .json.
func modelFile(name string) string {
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

// ModelPath returns where a model file lives.
func (s *ModelFileStore) ModelPath(file string) string {
	return filepath.Join(s.dir, modelFile(file))
}

// SaveModel writes a record. File defaults to "<backend>.json".
func (s *ModelFileStore) SaveModel(rec domain.NoiseModelRecord) error {
	if rec.File == "" {
		if rec.Backend == "" {
			return errors.New("noise model record has no backend or file name")
		}
		rec.File = rec.Backend
	}
	rec.File = modelFile(rec.File)
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, rec.File), rec, 0o644)
}

// LoadModel reads a record by file name ("heron_model" or
// "heron_model.json"). ok is false when it is not cached.
func (s *ModelFileStore) LoadModel(file string) (domain.NoiseModelRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec domain.NoiseModelRecord
	if err := readJSON(s.ModelPath(file), &rec); err != nil {
		return domain.NoiseModelRecord{}, false, fmt.Errorf("read model %s: %w", file, err)
	}
	if rec.Backend == "" && rec.Properties == nil {
		return domain.NoiseModelRecord{}, false, nil
	}
	if rec.File == "" {
		rec.File = modelFile(file)
	}
	return rec, true, nil
}

// ListModels returns every cached record ordered by file name.
func (s *ModelFileStore) ListModels() ([]domain.NoiseModelRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := jsonFiles(s.dir)
	if err != nil {
		return nil, err
	}
	out := make([]domain.NoiseModelRecord, 0, len(names))
	for _, n := range names {
		var rec domain.NoiseModelRecord
		if err := readJSON(filepath.Join(s.dir, n), &rec); err != nil {
			return nil, fmt.Errorf("read model %s: %w", n, err)
		}
		if rec.File == "" {
			rec.File = n
		}
		out = append(out, rec)
	}
	return out, nil
}

// Compile-time assertion that ModelFileStore implements domain.ModelStore.
var _ domain.ModelStore = (*ModelFileStore)(nil)
