package crypto_test

import (
	"strings"
	"testing"

	"quantumtie/internal/crypto"
)

func TestFingerprint(t *testing.T) {
	a := crypto.Fingerprint("token-a")
	if len(a) != 20 {
		t.Fatalf("fingerprint length = %d", len(a))
	}
	if a == crypto.Fingerprint("token-b") {
		t.Fatal("different tokens share a fingerprint")
	}
	if crypto.Fingerprint("") != "" {
		t.Fatal("empty token should have no fingerprint")
	}
}

func TestMask(t *testing.T) {
	if got := crypto.Mask("abcdef123456"); got != "****3456" {
		t.Fatalf("Mask = %q", got)
	}
	if got := crypto.Mask("abc"); strings.Contains(got, "abc") {
		t.Fatalf("short token leaked: %q", got)
	}
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	crypto.Wipe(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d not wiped", i)
		}
	}
}
