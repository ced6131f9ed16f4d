package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of a token, safe to print.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:10])
}

// Mask shows the last four characters of a token.
func Mask(token string) string {
	const keep = 4
	if len(token) <= keep {
		return "****"
	}
	return "****" + token[len(token)-keep:]
}
