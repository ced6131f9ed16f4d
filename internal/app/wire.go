package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
	"quantumtie/internal/local"
	"quantumtie/internal/netcheck"
	"quantumtie/internal/prompt"
	"quantumtie/internal/runtime"
	accountsvc "quantumtie/internal/services/account"
	backendsvc "quantumtie/internal/services/backend"
	modelsvc "quantumtie/internal/services/models"
	"quantumtie/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Home        Home
	Credentials *store.CredentialFileStore
	Models      *store.ModelFileStore
	Accounts    *accountsvc.Service
	ModelCache  *modelsvc.Service
	Backends    *backendsvc.Service
	Runner      *local.Runner
	Pinger      *netcheck.Pinger
	Prompt      domain.Prompter
	HTTP        *http.Client
	Log         *log.Logger

	cfg     Config
	out     *switchWriter
	logFile *os.File
}

// switchWriter lets LogToFile redirect loggers derived with WithPrefix,
// which keep their own copy of the output writer.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

// NewLogger returns the CLI logger writing to w at level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "quantumtie",
	}), nil
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		h, err := DefaultHome()
		if err != nil {
			return nil, err
		}
		cfg.Home = h
	}
	if err := cfg.Home.Ensure(); err != nil {
		return nil, err
	}

	out := &switchWriter{w: os.Stderr}
	logger, err := NewLogger(out, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	p := cfg.Prompt
	if p == nil {
		p = prompt.New()
	}

	// File-based stores
	creds := store.NewCredentialFileStore(cfg.Home.Credentials())
	models := store.NewModelFileStore(cfg.Home.ModelsDir())

	runner := &local.Runner{Python: cfg.Python, Dir: cfg.Home.RunnerDir()}
	pinger := netcheck.New(httpClient)

	w := &Wire{
		Home:        cfg.Home,
		Credentials: creds,
		Models:      models,
		Runner:      runner,
		Pinger:      pinger,
		Prompt:      p,
		HTTP:        httpClient,
		Log:         logger,
		cfg:         cfg,
		out:         out,
	}

	// High-level services
	w.Accounts = accountsvc.New(creds, p)
	w.ModelCache = modelsvc.New(models, w.connectDefault, logger.WithPrefix("models"))
	w.Backends = backendsvc.New(w.Accounts, w.Runtime, w.ModelCache, models, runner, pinger, p, logger.WithPrefix("backend"))
	if cfg.PingURL != "" {
		w.Backends.PingURL = cfg.PingURL
	}
	return w, nil
}

// Runtime returns a runtime client for acc. Circuits are transpiled by the
// local runner before they are submitted.
func (w *Wire) Runtime(acc domain.Account) domain.RuntimeService {
	return runtime.New(acc, runtime.Config{
		BaseURL:    w.cfg.RuntimeURL,
		IAMURL:     w.cfg.IAMURL,
		HTTP:       w.HTTP,
		Transpiler: w.Runner,
	})
}

// ConnectAccount resolves the account (running setup when missing) and
// returns its runtime client.
func (w *Wire) ConnectAccount(passphrase, name string) (domain.RuntimeService, error) {
	acc, err := w.Accounts.ResolveOrSetup(passphrase, name)
	if err != nil {
		return nil, err
	}
	return w.Runtime(acc), nil
}

func (w *Wire) connectDefault(context.Context) (domain.RuntimeService, error) {
	return w.ConnectAccount(w.cfg.Passphrase, w.cfg.Account)
}

// LogToFile sends log output to the home log file and extra. It is used
// while the emulator owns the terminal.
func (w *Wire) LogToFile(extra io.Writer) error {
	f, err := os.OpenFile(w.Home.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	w.logFile = f
	if extra != nil {
		w.out.set(io.MultiWriter(f, extra))
	} else {
		w.out.set(f)
	}
	return nil
}

// Close restores stderr logging and closes the log file.
func (w *Wire) Close() error {
	if w.logFile == nil {
		return nil
	}
	w.out.set(os.Stderr)
	err := w.logFile.Close()
	w.logFile = nil
	return err
}
