package interfaces

import domaintypes "quantumtie/internal/domain/types"

// CredentialStore persists runtime accounts.
type CredentialStore interface {
	SaveAccount(passphrase string, account domaintypes.Account, makeDefault bool) error
	// LoadAccount returns the named account, or the default account when
	// name is empty.
	LoadAccount(passphrase, name string) (domaintypes.Account, bool, error)
	ListAccounts() ([]string, string, error)
	DeleteAccount(name string) error
}

// ModelStore caches noise-model calibration records by file name.
type ModelStore interface {
	SaveModel(record domaintypes.NoiseModelRecord) error
	LoadModel(file string) (domaintypes.NoiseModelRecord, bool, error)
	ListModels() ([]domaintypes.NoiseModelRecord, error)
	// ModelPath returns the on-disk path of a cached model file.
	ModelPath(file string) string
}
