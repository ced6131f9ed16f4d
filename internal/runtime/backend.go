package runtime

import (
	"context"
	"fmt"
	"sync"

	"quantumtie/internal/domain"
)

// Backend is a remote device or simulator.
type Backend struct {
	client *Client
	config domain.BackendConfig

	mu     sync.Mutex
	isaFor string // source the cached ISA circuit was built from
	isa    string
}

func (b *Backend) Name() string    { return b.config.Name }
func (b *Backend) Local() bool     { return false }
func (b *Backend) Simulator() bool { return b.config.Simulator }

// NumQubits is the device width.
func (b *Backend) NumQubits() int { return b.config.NumQubits }

func (b *Backend) Status(ctx context.Context) (domain.BackendStatus, error) {
	return b.client.BackendStatus(ctx, b.config.Name)
}

// Submit transpiles circuit for this backend, when the client has a
// transpiler, and sends it to the sampler.
func (b *Backend) Submit(ctx context.Context, circuit domain.Circuit) (domain.Job, error) {
	if b.config.NumQubits > 0 && circuit.NumQubits > b.config.NumQubits {
		return nil, fmt.Errorf("circuit needs %d qubits, %s has %d", circuit.NumQubits, b.config.Name, b.config.NumQubits)
	}
	if b.client.transpiler != nil {
		isa, err := b.transpile(ctx, circuit.Source)
		if err != nil {
			return nil, fmt.Errorf("transpile for %s: %w", b.config.Name, err)
		}
		circuit.Source = isa
	}
	id, err := b.client.submit(ctx, b.config.Name, circuit)
	if err != nil {
		return nil, err
	}
	return &Job{client: b.client, id: id, registers: circuit.Registers}, nil
}

// transpile returns src rewritten for the device. The result is kept for
// repeated submissions of the same source.
func (b *Backend) transpile(ctx context.Context, src string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isa != "" && b.isaFor == src {
		return b.isa, nil
	}

	configuration, err := b.client.Configuration(ctx, b.config.Name)
	if err != nil {
		return "", err
	}
	properties, err := b.client.Properties(ctx, b.config.Name)
	if err != nil && !IsNotFound(err) {
		return "", err
	}
	isa, err := b.client.transpiler.Transpile(ctx, src, configuration, properties)
	if err != nil {
		return "", err
	}
	b.isaFor, b.isa = src, isa
	return isa, nil
}

// Job is a submitted sampler job.
type Job struct {
	client    *Client
	id        string
	reason    string
	registers []string
}

func (j *Job) ID() string { return j.id }

// Status polls the job. The failure reason, if any, is kept for Reason.
func (j *Job) Status(ctx context.Context) (domain.JobStatus, error) {
	st, reason, err := j.client.jobStatus(ctx, j.id)
	if err != nil {
		return "", err
	}
	j.reason = reason
	return st, nil
}

// Reason is the last failure reason the API reported.
func (j *Job) Reason() string { return j.reason }

func (j *Job) Result(ctx context.Context) (domain.Counts, error) {
	return j.client.jobResults(ctx, j.id, j.registers)
}

func (j *Job) Cancel(ctx context.Context) error { return j.client.cancel(ctx, j.id) }

var (
	_ domain.Backend = (*Backend)(nil)
	_ domain.Job     = (*Job)(nil)
)
