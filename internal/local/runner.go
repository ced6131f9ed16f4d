package local

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"quantumtie/internal/domain"
)

//go:embed runner.py
var runnerScript []byte

// Runner executes the simulator script.
type Runner struct {
	Python string // interpreter; default python3
	Script string // script path; empty writes the embedded script into Dir
	Dir    string
	Env    []string

	// Command builds the process. Tests replace it.
	Command func(ctx context.Context, name string, args ...string) *exec.Cmd

	once      sync.Once
	scriptErr error
}

type request struct {
	QASM          string         `json:"qasm"`
	Shots         int            `json:"shots"`
	Kind          Kind           `json:"kind"`
	NoiseModel    string         `json:"noise_model,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Properties    map[string]any `json:"properties,omitempty"`
}

type response struct {
	Counts    map[string]int `json:"counts"`
	QASM      string         `json:"qasm"`
	Backend   string         `json:"backend"`
	NumQubits int            `json:"num_qubits"`
	Error     string         `json:"error"`
}

// ScriptPath returns the script that will run, writing the embedded copy
// on first use.
func (r *Runner) ScriptPath() (string, error) {
	if r.Script != "" {
		return r.Script, nil
	}
	path := filepath.Join(r.Dir, "runner.py")
	r.once.Do(func() {
		if err := os.MkdirAll(r.Dir, 0o700); err != nil {
			r.scriptErr = err
			return
		}
		if b, err := os.ReadFile(path); err == nil && bytes.Equal(b, runnerScript) {
			return
		}
		r.scriptErr = os.WriteFile(path, runnerScript, 0o644)
	})
	if r.scriptErr != nil {
		return "", fmt.Errorf("install runner script: %w", r.scriptErr)
	}
	return path, nil
}

// run executes one request and returns the counts.
func (r *Runner) run(ctx context.Context, req request) (response, error) {
	script, err := r.ScriptPath()
	if err != nil {
		return response{}, err
	}
	python := r.Python
	if python == "" {
		python = "python3"
	}
	mk := r.Command
	if mk == nil {
		mk = exec.CommandContext
	}

	in, err := json.Marshal(req)
	if err != nil {
		return response{}, err
	}
	var stdout, stderr bytes.Buffer
	cmd := mk(ctx, python, script)
	cmd.Stdin = bytes.NewReader(in)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return response{}, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if i := strings.LastIndex(msg, "\n"); i >= 0 {
			msg = msg[i+1:]
		}
		return response{}, fmt.Errorf("local runner: %w: %s", err, msg)
	}

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return response{}, fmt.Errorf("local runner output: %w", err)
	}
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

// Transpile maps src onto the gates and coupling of the device described by
// its runtime configuration and properties, and returns the result as
// OpenQASM 3. properties may be nil.
func (r *Runner) Transpile(ctx context.Context, src string, configuration, properties map[string]any) (string, error) {
	if configuration == nil {
		return "", errors.New("transpile: backend configuration required")
	}
	resp, err := r.run(ctx, request{QASM: src, Kind: transpileKind, Configuration: configuration, Properties: properties})
	if err != nil {
		return "", fmt.Errorf("transpile: %w", err)
	}
	if strings.TrimSpace(resp.QASM) == "" {
		return "", errors.New("transpile: runner returned no circuit")
	}
	return resp.QASM, nil
}

// normalise strips register separators from Qiskit count keys.
func normalise(in map[string]int) domain.Counts {
	out := make(domain.Counts, len(in))
	for k, v := range in {
		out[strings.ReplaceAll(k, " ", "")] += v
	}
	return out
}
