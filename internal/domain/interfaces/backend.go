package interfaces

import (
	"context"

	domaintypes "quantumtie/internal/domain/types"
)

// Backend runs circuits, locally or on the remote runtime.
type Backend interface {
	Name() string
	// Local reports whether the backend executes on this machine.
	Local() bool
	// Simulator reports whether the backend simulates rather than runs on
	// a real processor. Simulators are re-run in a loop.
	Simulator() bool
	Status(ctx context.Context) (domaintypes.BackendStatus, error)
	Submit(ctx context.Context, circuit domaintypes.Circuit) (Job, error)
}

// Job is a submitted circuit.
type Job interface {
	ID() string
	Status(ctx context.Context) (domaintypes.JobStatus, error)
	// Result returns the measurement counts of a finished job.
	Result(ctx context.Context) (domaintypes.Counts, error)
	Cancel(ctx context.Context) error
}

// RuntimeService is the remote catalogue of backends.
type RuntimeService interface {
	Backends(ctx context.Context) ([]string, error)
	Backend(ctx context.Context, name string) (Backend, error)
	// LeastBusy returns the operational backend with the fewest pending
	// jobs, restricted to simulators or real processors.
	LeastBusy(ctx context.Context, simulator bool) (Backend, error)
	Properties(ctx context.Context, name string) (map[string]any, error)
	Configuration(ctx context.Context, name string) (map[string]any, error)
}
