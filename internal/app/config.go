package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"quantumtie/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       Home
	Passphrase string // unlocks sealed tokens
	Account    string // stored account name; empty uses the default
	RuntimeURL string // API root; empty uses the IBM default
	IAMURL     string
	PingURL    string
	Python     string // interpreter for the local runner
	LogLevel   string // debug, info, warn, error
	HTTP       *http.Client
	Prompt     domain.Prompter // optional; defaults to the terminal
}

// ApplyFile sets every flag in fs named by a key of the YAML file at path,
// unless it was given on the command line. A missing file is not an error.
// Lists become comma-separated values. Keys without a matching flag are
// returned so the caller can report them.
func ApplyFile(path string, fs *pflag.FlagSet) (unknown []string, err error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f := fs.Lookup(k)
		if f == nil {
			unknown = append(unknown, k)
			continue
		}
		if f.Changed {
			continue
		}
		if err := fs.Set(k, yamlValue(doc[k])); err != nil {
			return unknown, fmt.Errorf("%s: %s: %w", path, k, err)
		}
	}
	return unknown, nil
}

func yamlValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
