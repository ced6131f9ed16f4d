package types

import "time"

// JobStatus is the lifecycle state of a submitted circuit.
type JobStatus string

const (
	JobInitializing JobStatus = "INITIALIZING"
	JobQueued       JobStatus = "QUEUED"
	JobValidating   JobStatus = "VALIDATING"
	JobRunning      JobStatus = "RUNNING"
	JobDone         JobStatus = "DONE"
	JobCancelled    JobStatus = "CANCELLED"
	JobError        JobStatus = "ERROR"
)

// Final reports whether the job can no longer change state.
func (s JobStatus) Final() bool {
	switch s {
	case JobDone, JobCancelled, JobError:
		return true
	}
	return false
}

// String returns the string form of the status.
func (s JobStatus) String() string { return string(s) }

// Circuit is a QASM program ready for submission.
type Circuit struct {
	Source    string
	Name      string
	NumQubits int
	NumClbits int
	Shots     int
	// Registers are the classical register names in declaration order.
	Registers []string
}

// BackendStatus is the reported availability of a backend.
type BackendStatus struct {
	Name        string `json:"name"`
	Operational bool   `json:"operational"`
	StatusMsg   string `json:"status_msg"`
	PendingJobs int    `json:"pending_jobs"`
	Version     string `json:"version,omitempty"`
}

// Active reports whether the backend accepts jobs.
func (s BackendStatus) Active() bool {
	return s.Operational && s.StatusMsg == "active"
}

// BackendConfig is the subset of a backend configuration the program uses.
type BackendConfig struct {
	Name      string `json:"backend_name"`
	NumQubits int    `json:"n_qubits"`
	Simulator bool   `json:"simulator"`
}

// NoiseModelRecord is cached calibration data for one device, used to build
// a local noise model.
type NoiseModelRecord struct {
	Backend       string         `json:"backend"`
	File          string         `json:"file"`
	Properties    map[string]any `json:"properties"`
	Configuration map[string]any `json:"configuration,omitempty"`
	FetchedAt     time.Time      `json:"fetched_at"`
}
