package runtimetest

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Device is a fake backend.
type Device struct {
	Name        string
	Qubits      int
	Simulator   bool
	Operational bool
	Status      string // "active", "internal", ...
	Pending     int
	Properties  map[string]any
}

// Register is a classical register of the results.
type Register struct {
	Name string
	Bits int
}

type job struct {
	id        string
	backend   string
	shots     int
	polls     int
	cancelled bool
}

// Server holds the fake state. The zero value is not usable; call New.
type Server struct {
	// Token, when set, is the bearer every API request must carry. IAM
	// requests exchange any API key for this token.
	Token string
	// Polls before a job starts running and before it completes.
	PollsToRun      int
	PollsToComplete int
	// Counts is the distribution results are drawn from.
	Counts map[string]int
	// Registers split each pattern in declaration order, last register
	// leftmost. Empty means one register "c" holding every bit.
	Registers []Register

	mu      sync.Mutex
	devices map[string]*Device
	jobs    map[string]*job
	nextID  int
	submits int
	sources []string
}

// New returns a server with no devices and a fixed 5-bit distribution.
func New() *Server {
	return &Server{
		PollsToRun:      1,
		PollsToComplete: 2,
		Counts:          map[string]int{"10101": 6, "00000": 2, "11111": 2},
		devices:         map[string]*Device{},
		jobs:            map[string]*job{},
	}
}

// AddDevice registers or replaces a device.
func (s *Server) AddDevice(d Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Status == "" {
		d.Status = "active"
	}
	if d.Properties == nil {
		d.Properties = map[string]any{
			"backend_name":     d.Name,
			"backend_version":  "1.0.0",
			"last_update_date": "2024-01-01T00:00:00Z",
			"general":          []any{},
			"qubits":           []any{},
			"gates":            []any{},
		}
	}
	cp := d
	s.devices[d.Name] = &cp
}

// Submits returns the number of jobs created.
func (s *Server) Submits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submits
}

// Sources returns the circuit text of every submitted job.
func (s *Server) Sources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sources...)
}

// Handler returns the HTTP API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /identity/token", s.token)
	mux.HandleFunc("GET /backends", s.auth(s.listBackends))
	mux.HandleFunc("GET /backends/{name}/status", s.auth(s.backendStatus))
	mux.HandleFunc("GET /backends/{name}/configuration", s.auth(s.backendConfig))
	mux.HandleFunc("GET /backends/{name}/properties", s.auth(s.backendProperties))
	mux.HandleFunc("POST /jobs", s.auth(s.createJob))
	mux.HandleFunc("GET /jobs/{id}", s.auth(s.jobStatus))
	mux.HandleFunc("GET /jobs/{id}/results", s.auth(s.jobResults))
	mux.HandleFunc("POST /jobs/{id}/cancel", s.auth(s.cancelJob))
	return mux
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.Token {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r)
	}
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("apikey") == "" {
		writeError(w, http.StatusBadRequest, "apikey required")
		return
	}
	tok := s.Token
	if tok == "" {
		tok = "fake-iam-token"
	}
	writeJSON(w, map[string]any{"access_token": tok, "expires_in": 3600, "token_type": "Bearer"})
}

func (s *Server) device(w http.ResponseWriter, r *http.Request) (*Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, "backend not found")
		return nil, false
	}
	cp := *d
	return &cp, true
}

func (s *Server) listBackends(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	names := make([]string, 0, len(s.devices))
	for n := range s.devices {
		names = append(names, n)
	}
	s.mu.Unlock()
	sort.Strings(names)
	writeJSON(w, map[string]any{"devices": names})
}

func (s *Server) backendStatus(w http.ResponseWriter, r *http.Request) {
	d, ok := s.device(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"state":           d.Operational,
		"status":          d.Status,
		"message":         "",
		"length_queue":    d.Pending,
		"backend_version": "1.0.0",
	})
}

func (s *Server) backendConfig(w http.ResponseWriter, r *http.Request) {
	d, ok := s.device(w, r)
	if !ok {
		return
	}
	coupling := make([][]int, 0, 2*d.Qubits)
	for q := 1; q < d.Qubits; q++ {
		coupling = append(coupling, []int{q - 1, q}, []int{q, q - 1})
	}
	writeJSON(w, map[string]any{
		"backend_name":    d.Name,
		"backend_version": "1.0.0",
		"n_qubits":        d.Qubits,
		"simulator":       d.Simulator,
		"local":           false,
		"conditional":     false,
		"open_pulse":      false,
		"memory":          true,
		"max_shots":       100000,
		"basis_gates":     []string{"ecr", "id", "rz", "sx", "x"},
		"gates":           []any{},
		"coupling_map":    coupling,
	})
}

func (s *Server) backendProperties(w http.ResponseWriter, r *http.Request) {
	d, ok := s.device(w, r)
	if !ok {
		return
	}
	writeJSON(w, d.Properties)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProgramID string `json:"program_id"`
		Backend   string `json:"backend"`
		Params    struct {
			Pubs  [][]any `json:"pubs"`
			Shots int     `json:"shots"`
		} `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProgramID != "sampler" || len(req.Params.Pubs) == 0 {
		writeError(w, http.StatusBadRequest, "sampler pubs required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.devices[req.Backend]; !ok {
		writeError(w, http.StatusNotFound, "backend not found")
		return
	}
	s.nextID++
	s.submits++
	if pub := req.Params.Pubs[0]; len(pub) > 0 {
		if src, ok := pub[0].(string); ok {
			s.sources = append(s.sources, src)
		}
	}
	id := fmt.Sprintf("job-%04d", s.nextID)
	shots := req.Params.Shots
	if shots <= 0 {
		shots = 1024
	}
	s.jobs[id] = &job{id: id, backend: req.Backend, shots: shots}
	writeJSON(w, map[string]any{"id": id, "backend": req.Backend})
}

func (s *Server) jobStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	j, ok := s.jobs[r.PathValue("id")]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	j.polls++
	status := "Completed"
	switch {
	case j.cancelled:
		status = "Cancelled"
	case j.polls <= s.PollsToRun:
		status = "Queued"
	case j.polls <= s.PollsToComplete:
		status = "Running"
	}
	s.mu.Unlock()
	writeJSON(w, map[string]any{
		"id":      j.id,
		"backend": j.backend,
		"status":  status,
		"state":   map[string]any{"status": status},
	})
}

func (s *Server) jobResults(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	j, ok := s.jobs[r.PathValue("id")]
	counts := s.Counts
	regs := s.Registers
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	data := map[string]any{}
	if len(regs) == 0 {
		samples, width := Samples(counts, j.shots)
		data["c"] = map[string]any{"samples": samples, "num_bits": width}
	} else {
		patterns, _ := expand(counts, j.shots)
		offset := 0
		for i := len(regs) - 1; i >= 0; i-- {
			reg := regs[i]
			samples := make([]string, len(patterns))
			for n, p := range patterns {
				samples[n] = hexSample(p[offset : offset+reg.Bits])
			}
			data[reg.Name] = map[string]any{"samples": samples, "num_bits": reg.Bits}
			offset += reg.Bits
		}
	}
	writeJSON(w, map[string]any{
		"results": []any{map[string]any{"data": data}},
	})
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	j.cancelled = true
	w.WriteHeader(http.StatusNoContent)
}

// Samples spreads shots over counts in proportion and encodes them as hex
// samples, most frequent pattern first. It returns the samples and the bit
// width of the patterns.
func Samples(counts map[string]int, shots int) ([]string, int) {
	patterns, width := expand(counts, shots)
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = hexSample(p)
	}
	return out, width
}

// expand returns one bit-string pattern per shot.
func expand(counts map[string]int, shots int) ([]string, int) {
	keys := make([]string, 0, len(counts))
	total, width := 0, 0
	for k, v := range counts {
		keys = append(keys, k)
		total += v
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})
	if total == 0 {
		return nil, width
	}

	out := make([]string, 0, shots)
	for i, k := range keys {
		n := counts[k] * shots / total
		if i == 0 {
			n += shots - scaledTotal(counts, keys, shots, total)
		}
		for ; n > 0; n-- {
			out = append(out, k)
		}
	}
	return out, width
}

func hexSample(bits string) string {
	v, ok := new(big.Int).SetString(bits, 2)
	if !ok {
		return "0x0"
	}
	return "0x" + strings.ToLower(v.Text(16))
}

func scaledTotal(counts map[string]int, keys []string, shots, total int) int {
	n := 0
	for _, k := range keys {
		n += counts[k] * shots / total
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": []any{map[string]any{"message": msg}}})
}
