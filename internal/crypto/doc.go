// Package crypto holds the small helpers used around stored credentials:
// display fingerprints for API tokens and best-effort wiping of secret
// buffers once a token has been sealed or sent.
package crypto
