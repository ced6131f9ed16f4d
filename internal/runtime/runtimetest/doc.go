// Package runtimetest is an in-memory stand-in for the Qiskit Runtime REST
// API. It serves the endpoints the runtime client uses, plus an IAM token
// endpoint, so the client and the demo can be exercised without an IBM
// account.
//
// Jobs advance on each status poll: Queued, then Running, then Completed.
// Results are sampled deterministically from the configured counts.
package runtimetest
