package crypto

import "runtime"

// Wipe zeroes b. It is best-effort; Go may already have copied the data.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
