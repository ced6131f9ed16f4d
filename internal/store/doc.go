// Package store provides file-based persistence for quantumtie.
//
// It contains the concrete implementations of the domain storage
// interfaces, serialising data as JSON on disk with atomic replace. All
// methods are concurrency-safe via internal locking. Files live under the
// configured home directory:
//
//   - Runtime accounts (CredentialFileStore, credentials.json). Tokens are
//     sealed with scrypt + ChaCha20-Poly1305 when a passphrase is given.
//   - Noise-model calibration records (ModelFileStore, models/*.json)
package store
