package interfaces

import (
	"context"

	domaintypes "quantumtie/internal/domain/types"
)

// Prompter asks the operator questions on the terminal.
type Prompter interface {
	Ask(question string) (string, error)
	AskSecret(question string) (string, error)
	Pause(message string) error
}

// AccountService resolves and stores runtime credentials.
type AccountService interface {
	Resolve(passphrase, name string) (domaintypes.Account, error)
	Setup(passphrase string) (domaintypes.Account, error)
}

// ModelService refreshes the noise-model cache.
type ModelService interface {
	Update(ctx context.Context, devices map[string]string) ([]domaintypes.NoiseModelRecord, error)
	List() ([]domaintypes.NoiseModelRecord, error)
}

// Pinger checks reachability of the remote service.
type Pinger interface {
	Ping(ctx context.Context, url string) (int, error)
}
