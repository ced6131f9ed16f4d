package account

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"quantumtie/internal/domain"
)

// SetupURL documents how to obtain runtime credentials.
const SetupURL = "https://docs.quantum.ibm.com/guides/setup-channel#set-up-to-use-ibm-quantum-platform"

// Environment variables read by Resolve.
const (
	EnvToken    = "QISKIT_IBM_TOKEN"
	EnvChannel  = "QISKIT_IBM_CHANNEL"
	EnvInstance = "QISKIT_IBM_INSTANCE"
	EnvURL      = "QISKIT_IBM_URL"
)

var (
	// ErrAccountNotFound is returned when no credentials are available.
	ErrAccountNotFound = errors.New("IBM Quantum account not found")
	// ErrSetupAborted is returned when the operator declines or leaves an
	// answer blank during setup.
	ErrSetupAborted = fmt.Errorf("account setup aborted; see %s to store your account credentials", SetupURL)
	// ErrUnknownChannel is returned for a channel name outside the known set.
	ErrUnknownChannel = errors.New("unknown channel")
)

// Service finds and creates runtime accounts.
type Service struct {
	store  domain.CredentialStore
	prompt domain.Prompter
	getenv func(string) string
}

// New returns an account service. prompt may be nil when no interactive
// setup is possible.
func New(s domain.CredentialStore, p domain.Prompter) *Service {
	return &Service{store: s, prompt: p, getenv: os.Getenv}
}

// WithEnv replaces the environment lookup.
func (s *Service) WithEnv(getenv func(string) string) *Service {
	s.getenv = getenv
	return s
}

// ParseChannel validates a channel name. Empty selects the platform channel.
func ParseChannel(v string) (domain.Channel, error) {
	switch ch := domain.Channel(strings.ToLower(strings.TrimSpace(v))); ch {
	case "":
		return domain.ChannelQuantumPlatform, nil
	case domain.ChannelQuantumPlatform, domain.ChannelCloud, domain.ChannelQuantum:
		return ch, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownChannel, v)
}

// Resolve returns the account to use: environment, then name, then the
// stored default.
func (s *Service) Resolve(passphrase, name string) (domain.Account, error) {
	if tok := s.getenv(EnvToken); tok != "" && name == "" {
		ch, err := ParseChannel(s.getenv(EnvChannel))
		if err != nil {
			return domain.Account{}, fmt.Errorf("%s: %w", EnvChannel, err)
		}
		return domain.Account{
			Name:     "env",
			Channel:  ch,
			Token:    tok,
			Instance: s.getenv(EnvInstance),
			URL:      s.getenv(EnvURL),
		}, nil
	}

	acc, ok, err := s.store.LoadAccount(passphrase, name)
	if err != nil {
		return domain.Account{}, err
	}
	if !ok {
		if name != "" {
			return domain.Account{}, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
		}
		return domain.Account{}, ErrAccountNotFound
	}
	return acc, nil
}

// ResolveOrSetup is Resolve with an interactive Setup when nothing is
// stored.
func (s *Service) ResolveOrSetup(passphrase, name string) (domain.Account, error) {
	acc, err := s.Resolve(passphrase, name)
	if errors.Is(err, ErrAccountNotFound) && s.prompt != nil {
		return s.Setup(passphrase)
	}
	return acc, err
}

// Setup asks for credentials, stores them as the default account and
// returns them.
func (s *Service) Setup(passphrase string) (domain.Account, error) {
	if s.prompt == nil {
		return domain.Account{}, ErrSetupAborted
	}
	ans, err := s.prompt.Ask("Would you like to store your IBM account credentials on this machine? Y/N\n (N)>")
	if err != nil {
		return domain.Account{}, err
	}
	if !strings.HasPrefix(strings.ToUpper(ans), "Y") {
		return domain.Account{}, ErrSetupAborted
	}

	ans, err = s.prompt.Ask("Is your account on 1) IBM Quantum Platform or 2) IBM Cloud?\n (IBM Quantum Platform)>")
	if err != nil {
		return domain.Account{}, err
	}
	acc := domain.Account{Channel: domain.ChannelQuantumPlatform}
	if strings.HasPrefix(ans, "2") {
		acc.Channel = domain.ChannelCloud
	}

	if acc.Token, err = s.prompt.AskSecret("Enter/Paste your API key:\n"); err != nil {
		return domain.Account{}, err
	}
	if acc.Instance, err = s.prompt.Ask("Enter/Paste the CRN for your Quantum service instance:\n"); err != nil {
		return domain.Account{}, err
	}
	acc.Token, acc.Instance = strings.TrimSpace(acc.Token), strings.TrimSpace(acc.Instance)
	if acc.Token == "" || acc.Instance == "" {
		return domain.Account{}, ErrSetupAborted
	}

	if err := s.store.SaveAccount(passphrase, acc, true); err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}
	saved, ok, err := s.store.LoadAccount(passphrase, "")
	if err != nil || !ok {
		return acc, err
	}
	return saved, nil
}

// Compile-time assertion that Service implements domain.AccountService.
var _ domain.AccountService = (*Service)(nil)
