package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
)

// DefaultDevices maps backend names to the cache file for each.
var DefaultDevices = map[string]string{
	"ibm_torino":     "heron_model.json",
	"ibm_brisbane":   "eagle_brisbane_model.json",
	"ibm_sherbrooke": "eagle_sherbrooke_model.json",
}

// ErrNoModelsUpdated is returned when every device in an update failed.
var ErrNoModelsUpdated = errors.New("no noise models updated")

// Connector opens the runtime service on demand.
type Connector func(ctx context.Context) (domain.RuntimeService, error)

// Service updates and lists cached noise models.
type Service struct {
	store   domain.ModelStore
	connect Connector
	log     *log.Logger
	now     func() time.Time
}

// New returns a model service. logger may be nil.
func New(s domain.ModelStore, connect Connector, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{store: s, connect: connect, log: logger, now: time.Now}
}

// Update fetches properties and configuration for each device and caches
// them. nil devices means DefaultDevices. Devices that fail are logged and
// skipped.
func (s *Service) Update(ctx context.Context, devices map[string]string) ([]domain.NoiseModelRecord, error) {
	if devices == nil {
		devices = DefaultDevices
	}
	rt, err := s.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect runtime: %w", err)
	}

	names := make([]string, 0, len(devices))
	for n := range devices {
		names = append(names, n)
	}
	sort.Strings(names)

	var (
		out  []domain.NoiseModelRecord
		errs []error
	)
	for _, name := range names {
		rec, err := s.fetch(ctx, rt, name, devices[name])
		if err != nil {
			s.log.Warn("noise model update failed", "backend", name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		s.log.Info("noise model cached", "backend", name, "file", rec.File)
		out = append(out, rec)
	}
	if len(out) == 0 && len(names) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoModelsUpdated, errors.Join(errs...))
	}
	return out, nil
}

func (s *Service) fetch(ctx context.Context, rt domain.RuntimeService, name, file string) (domain.NoiseModelRecord, error) {
	props, err := rt.Properties(ctx, name)
	if err != nil {
		return domain.NoiseModelRecord{}, fmt.Errorf("properties: %w", err)
	}
	conf, err := rt.Configuration(ctx, name)
	if err != nil {
		return domain.NoiseModelRecord{}, fmt.Errorf("configuration: %w", err)
	}
	if file == "" {
		file = name + ".json"
	}
	rec := domain.NoiseModelRecord{
		Backend:       name,
		File:          file,
		Properties:    props,
		Configuration: conf,
		FetchedAt:     s.now().UTC(),
	}
	if err := s.store.SaveModel(rec); err != nil {
		return domain.NoiseModelRecord{}, fmt.Errorf("save: %w", err)
	}
	return rec, nil
}

// List returns the cached records.
func (s *Service) List() ([]domain.NoiseModelRecord, error) {
	return s.store.ListModels()
}

// Find returns a cached record by file name or backend name.
func (s *Service) Find(name string) (domain.NoiseModelRecord, bool, error) {
	if rec, ok, err := s.store.LoadModel(name); err != nil || ok {
		return rec, ok, err
	}
	if f, ok := DefaultDevices[name]; ok {
		if rec, ok, err := s.store.LoadModel(f); err != nil || ok {
			return rec, ok, err
		}
	}
	recs, err := s.store.ListModels()
	if err != nil {
		return domain.NoiseModelRecord{}, false, err
	}
	for _, r := range recs {
		if r.Backend == name {
			return r, true, nil
		}
	}
	return domain.NoiseModelRecord{}, false, nil
}

// Path returns the on-disk location of a cached record.
func (s *Service) Path(rec domain.NoiseModelRecord) string {
	return s.store.ModelPath(rec.File)
}

// Compile-time assertion that Service implements domain.ModelService.
var _ domain.ModelService = (*Service)(nil)
