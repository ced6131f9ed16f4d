package local

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"quantumtie/internal/domain"
)

// Kind selects the local simulator.
type Kind string

const (
	FakeManila Kind = "fake_manila"
	Aer        Kind = "aer"
	AerModel   Kind = "aer_model"

	transpileKind Kind = "transpile"
)

// FakeManilaQubits is the width of the FakeManila device.
const FakeManilaQubits = 5

// ErrNotFinished is returned for results of a job that has not completed.
var ErrNotFinished = errors.New("job has not finished")

// Backend is a local simulator.
type Backend struct {
	runner     *Runner
	kind       Kind
	noiseModel string
}

// NewBackend returns a backend of kind. noiseModel is the cached record
// path used by AerModel.
func NewBackend(r *Runner, kind Kind, noiseModel string) *Backend {
	return &Backend{runner: r, kind: kind, noiseModel: noiseModel}
}

// Kind returns the simulator kind.
func (b *Backend) Kind() Kind { return b.kind }

func (b *Backend) Name() string {
	switch b.kind {
	case FakeManila:
		return "fake_manila"
	case AerModel:
		model := strings.TrimSuffix(filepath.Base(b.noiseModel), filepath.Ext(b.noiseModel))
		return fmt.Sprintf("aer_simulator_from(%s)", model)
	}
	return "aer_simulator"
}

func (b *Backend) Local() bool     { return true }
func (b *Backend) Simulator() bool { return true }

// Status always reports an active simulator.
func (b *Backend) Status(context.Context) (domain.BackendStatus, error) {
	return domain.BackendStatus{Name: b.Name(), Operational: true, StatusMsg: "active"}, nil
}

// Submit starts the runner in the background. The job stops when ctx is
// cancelled.
func (b *Backend) Submit(ctx context.Context, c domain.Circuit) (domain.Job, error) {
	if b.kind == FakeManila && c.NumQubits > FakeManilaQubits {
		return nil, fmt.Errorf("circuit needs %d qubits, fake_manila has %d", c.NumQubits, FakeManilaQubits)
	}
	if b.kind == AerModel && b.noiseModel == "" {
		return nil, fmt.Errorf("aer_model needs a noise model")
	}

	jctx, cancel := context.WithCancel(ctx)
	j := &Job{id: uuid.NewString(), status: domain.JobQueued, cancel: cancel, done: make(chan struct{})}
	req := request{QASM: c.Source, Shots: c.Shots, Kind: b.kind, NoiseModel: b.noiseModel}

	go func() {
		defer close(j.done)
		defer cancel()
		j.set(domain.JobRunning, nil, nil)
		resp, err := b.runner.run(jctx, req)
		switch {
		case errors.Is(err, context.Canceled):
			j.set(domain.JobCancelled, nil, err)
		case err != nil:
			j.set(domain.JobError, nil, err)
		default:
			j.set(domain.JobDone, normalise(resp.Counts), nil)
		}
	}()
	return j, nil
}

// Job is a running local simulation.
type Job struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status domain.JobStatus
	counts domain.Counts
	err    error
}

func (j *Job) set(s domain.JobStatus, c domain.Counts, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status, j.counts, j.err = s, c, err
}

func (j *Job) ID() string { return j.id }

func (j *Job) Status(context.Context) (domain.JobStatus, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status, nil
}

// Err is the failure of a job in the Error state.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

func (j *Job) Result(context.Context) (domain.Counts, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch j.status {
	case domain.JobDone:
		return j.counts, nil
	case domain.JobError, domain.JobCancelled:
		return nil, fmt.Errorf("job %s %s: %w", j.id, strings.ToLower(string(j.status)), j.err)
	}
	return nil, ErrNotFinished
}

// Cancel kills the runner process.
func (j *Job) Cancel(context.Context) error {
	j.cancel()
	<-j.done
	return nil
}

// Done is closed when the runner exits.
func (j *Job) Done() <-chan struct{} { return j.done }

var (
	_ domain.Backend = (*Backend)(nil)
	_ domain.Job     = (*Job)(nil)
)
