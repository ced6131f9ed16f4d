package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"quantumtie/internal/crypto"
	"quantumtie/internal/domain"
)

const credentialsFile = "credentials.json"

var (
	// ErrNotFound is returned when deleting an account that does not exist.
	ErrNotFound = errors.New("account not found")
	// ErrPassphraseRequired is returned when a sealed token is loaded
	// without a passphrase.
	ErrPassphraseRequired = errors.New("account token is encrypted; passphrase required")
)

// storedAccount is the on-disk form of an account. Exactly one of Token and
// Sealed is set.
type storedAccount struct {
	Channel  domain.Channel `json:"channel"`
	Token    string         `json:"token,omitempty"`
	Sealed   *blob          `json:"sealed_token,omitempty"`
	Instance string         `json:"instance,omitempty"`
	URL      string         `json:"url,omitempty"`
}

type credentialsDoc struct {
	Default  string                   `json:"default,omitempty"`
	Accounts map[string]storedAccount `json:"accounts"`
}

// CredentialFileStore persists runtime accounts in credentials.json.
type CredentialFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCredentialFileStore returns a CredentialFileStore rooted at dir.
func NewCredentialFileStore(dir string) *CredentialFileStore {
	return &CredentialFileStore{dir: dir}
}

// DefaultAccountName is the name given to an unnamed account.
func DefaultAccountName(ch domain.Channel) string {
	return "default-" + strings.ReplaceAll(string(ch), "_", "-")
}

func (s *CredentialFileStore) path() string { return filepath.Join(s.dir, credentialsFile) }

func (s *CredentialFileStore) load() (credentialsDoc, error) {
	doc := credentialsDoc{Accounts: map[string]storedAccount{}}
	if err := readJSON(s.path(), &doc); err != nil {
		return doc, fmt.Errorf("read %s: %w", credentialsFile, err)
	}
	if doc.Accounts == nil {
		doc.Accounts = map[string]storedAccount{}
	}
	return doc, nil
}

// SaveAccount stores or replaces an account. The token is sealed when
// passphrase is non-empty. The first saved account always becomes default.
func (s *CredentialFileStore) SaveAccount(passphrase string, acc domain.Account, makeDefault bool) error {
	if acc.Token == "" {
		return errors.New("account has no token")
	}
	if acc.Name == "" {
		acc.Name = DefaultAccountName(acc.Channel)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	rec := storedAccount{Channel: acc.Channel, Instance: acc.Instance, URL: acc.URL}
	if passphrase != "" {
		raw := []byte(acc.Token)
		rec.Sealed, err = seal(passphrase, raw)
		crypto.Wipe(raw)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
	} else {
		rec.Token = acc.Token
	}
	doc.Accounts[acc.Name] = rec
	if makeDefault || doc.Default == "" {
		doc.Default = acc.Name
	}
	return writeJSON(s.path(), doc, 0o600)
}

// LoadAccount returns the named account, or the default when name is empty.
func (s *CredentialFileStore) LoadAccount(passphrase, name string) (domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.Account{}, false, err
	}
	if name == "" {
		name = doc.Default
	}
	rec, ok := doc.Accounts[name]
	if !ok || name == "" {
		return domain.Account{}, false, nil
	}

	acc := domain.Account{Name: name, Channel: rec.Channel, Token: rec.Token, Instance: rec.Instance, URL: rec.URL}
	if rec.Sealed != nil {
		if passphrase == "" {
			return domain.Account{}, false, fmt.Errorf("account %q: %w", name, ErrPassphraseRequired)
		}
		pt, err := open(passphrase, rec.Sealed)
		if err != nil {
			return domain.Account{}, false, fmt.Errorf("account %q: %w", name, err)
		}
		acc.Token = string(pt)
		crypto.Wipe(pt)
	}
	return acc, true, nil
}

// ListAccounts returns the sorted account names and the default name.
func (s *CredentialFileStore) ListAccounts() ([]string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, "", err
	}
	names := make([]string, 0, len(doc.Accounts))
	for n := range doc.Accounts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, doc.Default, nil
}

// DeleteAccount removes an account. Deleting the default clears it.
func (s *CredentialFileStore) DeleteAccount(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Accounts[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(doc.Accounts, name)
	if doc.Default == name {
		doc.Default = ""
	}
	return writeJSON(s.path(), doc, 0o600)
}

// Compile-time assertion that CredentialFileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*CredentialFileStore)(nil)
