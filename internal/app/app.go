package app

import (
	"os"
	"path/filepath"
)

// Home is the per-user state directory, by default ~/.quantumtie.
type Home string

// DefaultHome returns ~/.quantumtie.
func DefaultHome() (Home, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return Home(filepath.Join(dir, ".quantumtie")), nil
}

func (h Home) String() string      { return string(h) }
func (h Home) ConfigFile() string  { return filepath.Join(string(h), "config.yaml") }
func (h Home) ModelsDir() string   { return filepath.Join(string(h), "models") }
func (h Home) RunnerDir() string   { return filepath.Join(string(h), "runner") }
func (h Home) LogFile() string     { return filepath.Join(string(h), "quantumtie.log") }
func (h Home) Credentials() string { return string(h) }

// Ensure creates the directory.
func (h Home) Ensure() error { return os.MkdirAll(string(h), 0o700) }
