// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (patterns, frames, job and backend state, accounts)
// and contracts (backends, displays, stores, services) only.
package domain
