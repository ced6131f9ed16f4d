package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
	"quantumtie/internal/local"
)

// DefaultPingURL is checked before connecting to the remote service.
const DefaultPingURL = "https://quantum.cloud.ibm.com/"

// Backend parameters with special meaning.
const (
	ParamLeast    = "least"
	ParamAer      = "aer"
	ParamAerModel = "aer_model"
)

var (
	// ErrServiceUnreachable is returned when the pre-start ping fails.
	ErrServiceUnreachable = errors.New("runtime service unreachable")
	// ErrNoiseModelNotFound is returned for an unknown --noise-model.
	ErrNoiseModelNotFound = errors.New("noise model not cached")
)

// Options are the selection parameters from the command line.
type Options struct {
	Backend    string // backend parameter; empty selects a local runner
	Local      bool
	Noise      bool
	NoiseModel string // cached model file or backend name
	Select     bool   // ask for the backend interactively
	Qubits     int    // qubits the circuit needs
	Account    string // stored account name; empty uses the default
	Passphrase string
	Debug      bool
}

// Selection is the chosen backend.
type Selection struct {
	Backend domain.Backend
	// PingURL is pinged each run for remote backends; empty for local.
	PingURL string
}

// Accounts resolves credentials, running setup when none are stored.
type Accounts interface {
	ResolveOrSetup(passphrase, name string) (domain.Account, error)
}

// Models finds cached noise-model records.
type Models interface {
	Find(name string) (domain.NoiseModelRecord, bool, error)
	Path(rec domain.NoiseModelRecord) string
}

// Connector opens the runtime service for an account.
type Connector func(domain.Account) domain.RuntimeService

// Service selects backends.
type Service struct {
	accounts Accounts
	connect  Connector
	models   Models
	store    domain.ModelStore
	runner   *local.Runner
	pinger   domain.Pinger
	prompt   domain.Prompter
	log      *log.Logger

	// PingURL is checked before connecting; DefaultPingURL if empty.
	PingURL string
}

// New returns a selection service. logger and prompt may be nil.
func New(
	accounts Accounts,
	connect Connector,
	models Models,
	store domain.ModelStore,
	runner *local.Runner,
	pinger domain.Pinger,
	prompt domain.Prompter,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		accounts: accounts,
		connect:  connect,
		models:   models,
		store:    store,
		runner:   runner,
		pinger:   pinger,
		prompt:   prompt,
		log:      logger,
		PingURL:  DefaultPingURL,
	}
}

// Select builds the backend described by opts.
//
// Order:
//  1. --select asks for the parameter.
//  2. --noise-model loads a cached model into local Aer.
//  3. Local requests (default, or any request for noise) use FakeManila
//     for up to five qubits, else basic Aer.
//  4. "aer" parameters stay local unless they ask for a model or noise.
//  5. Everything else pings the service, resolves the account and picks
//     a remote backend (least busy, named, or a model for local Aer).
func (s *Service) Select(ctx context.Context, opts Options) (Selection, error) {
	param := strings.ToLower(strings.TrimSpace(opts.Backend))
	forceLocal := opts.Local || opts.Noise
	if opts.Select && s.prompt != nil {
		ans, err := s.prompt.Ask("type the backend you wish to use:\n" +
			" 'least' will find a least-busy real backend.\n" +
			" 'aer' will generate a basic Aer Simulator\n" +
			" 'aernois' or 'aer_model' will create a real-system noise modeled Aer simulator.\n>")
		if err != nil {
			return Selection{}, err
		}
		if ans != "" {
			param = strings.ToLower(ans)
			forceLocal = false
		}
	}
	s.log.Info("selecting backend", "param", param, "local", forceLocal, "qubits", opts.Qubits)
	if opts.Debug {
		if err := s.pause("Press Enter Key to create backend"); err != nil {
			return Selection{}, err
		}
	}

	if opts.NoiseModel != "" {
		return s.cachedModel(opts.NoiseModel)
	}

	wantsModel := strings.Contains(param, "mod") || strings.Contains(param, "nois")
	switch {
	case wantsModel:
		return s.remoteModel(ctx, opts)
	case param == "" || forceLocal || param == "local" || strings.Contains(param, "fake"):
		return s.localDefault(opts), nil
	case strings.Contains(param, "aer"):
		return s.localBackend(local.Aer, ""), nil
	}
	return s.remote(ctx, opts, param)
}

func (s *Service) localDefault(opts Options) Selection {
	if opts.Qubits > local.FakeManilaQubits {
		if opts.Noise {
			s.log.Warn("fake_manila has 5 qubits; using basic Aer", "qubits", opts.Qubits)
		}
		return s.localBackend(local.Aer, "")
	}
	return s.localBackend(local.FakeManila, "")
}

func (s *Service) localBackend(kind local.Kind, model string) Selection {
	b := local.NewBackend(s.runner, kind, model)
	s.log.Info("building local simulator", "backend", b.Name())
	return Selection{Backend: b}
}

func (s *Service) cachedModel(name string) (Selection, error) {
	rec, ok, err := s.models.Find(name)
	if err != nil {
		return Selection{}, err
	}
	if !ok {
		return Selection{}, fmt.Errorf("%w: %s (run `quantumtie models update`)", ErrNoiseModelNotFound, name)
	}
	s.log.Info("using cached noise model", "backend", rec.Backend, "fetched", rec.FetchedAt)
	return s.localBackend(local.AerModel, s.models.Path(rec)), nil
}

// connectRemote pings the service then opens the runtime for the account.
func (s *Service) connectRemote(ctx context.Context, opts Options) (domain.RuntimeService, error) {
	url := s.PingURL
	if url == "" {
		url = DefaultPingURL
	}
	s.log.Info("pinging runtime service before start", "url", url)
	code, err := s.pinger.Ping(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnreachable, err)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnreachable, code)
	}

	acc, err := s.accounts.ResolveOrSetup(opts.Passphrase, opts.Account)
	if err != nil {
		return nil, err
	}
	s.log.Info("connecting to runtime", "account", acc.Name, "channel", acc.Channel)
	return s.connect(acc), nil
}

// remoteModel builds local Aer from the least-busy real backend's
// calibration, caching the record.
func (s *Service) remoteModel(ctx context.Context, opts Options) (Selection, error) {
	rt, err := s.connectRemote(ctx, opts)
	if err != nil {
		return Selection{}, err
	}
	dev, err := rt.LeastBusy(ctx, false)
	if err != nil {
		return Selection{}, fmt.Errorf("least busy backend: %w", err)
	}
	name := dev.Name()
	props, err := rt.Properties(ctx, name)
	if err != nil {
		return Selection{}, fmt.Errorf("properties for %s: %w", name, err)
	}
	conf, err := rt.Configuration(ctx, name)
	if err != nil {
		return Selection{}, fmt.Errorf("configuration for %s: %w", name, err)
	}
	rec := domain.NoiseModelRecord{
		Backend:       name,
		File:          name + ".json",
		Properties:    props,
		Configuration: conf,
	}
	if err := s.store.SaveModel(rec); err != nil {
		return Selection{}, fmt.Errorf("cache noise model: %w", err)
	}
	s.log.Info("creating Aer simulator modeled from real backend", "backend", name)
	return s.localBackend(local.AerModel, s.store.ModelPath(rec.File)), nil
}

func (s *Service) remote(ctx context.Context, opts Options, param string) (Selection, error) {
	rt, err := s.connectRemote(ctx, opts)
	if err != nil {
		return Selection{}, err
	}

	var b domain.Backend
	if strings.Contains(param, ParamLeast) {
		b, err = rt.LeastBusy(ctx, false)
	} else {
		b, err = rt.Backend(ctx, param)
		if err != nil {
			s.log.Warn("first backend attempt failed; trying least busy", "backend", param, "err", err)
			b, err = rt.LeastBusy(ctx, false)
		}
	}
	if err != nil {
		return Selection{}, fmt.Errorf("remote backend: %w", err)
	}
	s.log.Info("using remote backend", "backend", b.Name(), "simulator", b.Simulator())

	url := s.PingURL
	if url == "" {
		url = DefaultPingURL
	}
	return Selection{Backend: b, PingURL: url}, nil
}

func (s *Service) pause(msg string) error {
	if s.prompt == nil {
		return nil
	}
	return s.prompt.Pause(msg)
}
