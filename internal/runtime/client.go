package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"quantumtie/internal/domain"
)

const (
	// DefaultBaseURL is the Qiskit Runtime API on IBM Quantum Platform.
	DefaultBaseURL = "https://quantum.cloud.ibm.com/api/v1"
	// DefaultAPIVersion is sent as the IBM-API-Version header.
	DefaultAPIVersion = "2025-05-01"
)

var (
	// ErrNoBackend is returned when no backend matches a request.
	ErrNoBackend = errors.New("no suitable backend")
	// ErrInstanceRequired is returned for IAM accounts without a service
	// instance CRN, which the API rejects.
	ErrInstanceRequired = errors.New("service instance CRN required")
)

// APIError is a non-2xx response.
type APIError struct {
	Method string
	Path   string
	Status string
	Code   int
	Body   string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("runtime %s %s: %s", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == http.StatusNotFound
}

// Transpiler rewrites a circuit into the native gates and layout of a
// device and returns it as OpenQASM 3.
type Transpiler interface {
	Transpile(ctx context.Context, src string, configuration, properties map[string]any) (string, error)
}

// Config holds connection options. Zero fields take defaults.
type Config struct {
	BaseURL    string
	IAMURL     string
	APIVersion string
	HTTP       *http.Client
	// Transpiler prepares circuits before submission. Without one,
	// circuits are sent as written.
	Transpiler Transpiler
}

// Client talks to the runtime API on behalf of one account.
type Client struct {
	base       string
	apiVersion string
	account    domain.Account
	http       *http.Client
	auth       *authenticator
	transpiler Transpiler
}

// New returns a client for account. The account URL, when set, overrides
// cfg.BaseURL.
func New(account domain.Account, cfg Config) *Client {
	if cfg.HTTP == nil {
		cfg.HTTP = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if account.URL != "" {
		cfg.BaseURL = account.URL
	}
	if cfg.IAMURL == "" {
		cfg.IAMURL = DefaultIAMURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	return &Client{
		base:       cfg.BaseURL,
		apiVersion: cfg.APIVersion,
		account:    account,
		http:       cfg.HTTP,
		transpiler: cfg.Transpiler,
		auth: &authenticator{
			account: account,
			iamURL:  cfg.IAMURL,
			http:    cfg.HTTP,
			now:     time.Now,
		},
	}
}

// BaseURL returns the API root the client uses.
func (c *Client) BaseURL() string { return c.base }

// Backends lists the backend names visible to the account.
func (c *Client) Backends(ctx context.Context) ([]string, error) {
	var out backendsResponse
	if err := c.getJSON(ctx, "/backends", &out); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// BackendStatus returns the status of one backend.
func (c *Client) BackendStatus(ctx context.Context, name string) (domain.BackendStatus, error) {
	var out statusResponse
	if err := c.getJSON(ctx, "/backends/"+url.PathEscape(name)+"/status", &out); err != nil {
		return domain.BackendStatus{}, err
	}
	return domain.BackendStatus{
		Name:        name,
		Operational: out.State,
		StatusMsg:   out.Status,
		PendingJobs: out.LengthQueue,
		Version:     out.BackendVersion,
	}, nil
}

// Configuration returns the raw configuration document of a backend.
func (c *Client) Configuration(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	err := c.getJSON(ctx, "/backends/"+url.PathEscape(name)+"/configuration", &out)
	return out, err
}

// Properties returns the raw calibration properties of a backend.
func (c *Client) Properties(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	err := c.getJSON(ctx, "/backends/"+url.PathEscape(name)+"/properties", &out)
	return out, err
}

func (c *Client) backendConfig(ctx context.Context, name string) (domain.BackendConfig, error) {
	var cfg domain.BackendConfig
	if err := c.getJSON(ctx, "/backends/"+url.PathEscape(name)+"/configuration", &cfg); err != nil {
		return domain.BackendConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	return cfg, nil
}

// Backend returns a handle on the named backend.
func (c *Client) Backend(ctx context.Context, name string) (domain.Backend, error) {
	cfg, err := c.backendConfig(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return &Backend{client: c, config: cfg}, nil
}

// LeastBusy returns the active backend with the fewest pending jobs among
// simulators (simulator=true) or real devices.
func (c *Client) LeastBusy(ctx context.Context, simulator bool) (domain.Backend, error) {
	names, err := c.Backends(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var (
		best    *Backend
		pending int
	)
	for _, n := range names {
		cfg, err := c.backendConfig(ctx, n)
		if err != nil || cfg.Simulator != simulator {
			continue
		}
		st, err := c.BackendStatus(ctx, n)
		if err != nil || !st.Active() {
			continue
		}
		if best == nil || st.PendingJobs < pending {
			best, pending = &Backend{client: c, config: cfg}, st.PendingJobs
		}
	}
	if best == nil {
		return nil, ErrNoBackend
	}
	return best, nil
}

// submit starts a sampler job.
func (c *Client) submit(ctx context.Context, backend string, circuit domain.Circuit) (string, error) {
	req := jobRequest{
		ProgramID: "sampler",
		Backend:   backend,
		Params: samplerParams{
			Pubs:    [][]any{{circuit.Source}},
			Shots:   circuit.Shots,
			Version: 2,
		},
	}
	var out jobCreated
	if err := c.post(ctx, "/jobs", req, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("runtime post /jobs: response has no job id")
	}
	return out.ID, nil
}

func (c *Client) jobStatus(ctx context.Context, id string) (domain.JobStatus, string, error) {
	var out jobResponse
	if err := c.getJSON(ctx, "/jobs/"+url.PathEscape(id), &out); err != nil {
		return "", "", err
	}
	s := out.State.Status
	if s == "" {
		s = out.Status
	}
	return jobStatus(s), out.State.Reason, nil
}

func (c *Client) jobResults(ctx context.Context, id string, registers []string) (domain.Counts, error) {
	var out resultsResponse
	if err := c.getJSON(ctx, "/jobs/"+url.PathEscape(id)+"/results", &out); err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, fmt.Errorf("job %s: empty result", id)
	}
	return decodeCounts(out.Results[0].Data, registers)
}

func (c *Client) cancel(ctx context.Context, id string) error {
	return c.post(ctx, "/jobs/"+url.PathEscape(id)+"/cancel", struct{}{}, nil)
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, buf, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	if c.account.Channel.UsesIAM() && c.account.Instance == "" {
		return fmt.Errorf("%s account %q: %w", c.account.Channel, c.account.Name, ErrInstanceRequired)
	}
	token, err := c.auth.bearer(ctx)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("IBM-API-Version", c.apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.account.Instance != "" {
		req.Header.Set("Service-CRN", c.account.Instance)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Method: method,
			Path:   path,
			Status: resp.Status,
			Code:   resp.StatusCode,
			Body:   string(bytes.TrimSpace(msg)),
		}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.RuntimeService = (*Client)(nil)
