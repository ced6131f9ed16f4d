// Package local runs circuits on this machine through the vendor's Python
// simulator.
//
// A small runner script (embedded in the binary) is written to the cache
// directory and executed with the configured Python interpreter. The
// request goes in as JSON on stdin; counts come back as JSON on stdout.
// Each job runs in its own goroutine so callers poll it exactly like a
// remote job.
//
// Kinds:
//
//   - fake_manila  5-qubit device noise (FakeManilaV2)
//   - aer          ideal Aer simulator
//   - aer_model    Aer with a noise model built from cached calibration data
package local
