// Package runtime is a client for the IBM Qiskit Runtime REST API.
//
// It lists backends and their status, picks the least busy device, submits
// sampler jobs built from QASM source, polls them and decodes the returned
// samples into counts. IBM Cloud API keys are exchanged for IAM bearer
// tokens, which are cached until shortly before they expire.
//
// All requests are JSON over HTTP and take a context for cancellation.
// Non-2xx statuses are returned as *APIError values carrying the method,
// path and status to aid diagnostics.
package runtime
