package store

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"quantumtie/internal/crypto"
)

// sealedVersion is the newest envelope format this package reads.
const sealedVersion = 1

// ErrWrongPassphrase is returned when a sealed token cannot be opened.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted credentials")

// blob is a sealed token with its KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw.
func seal(passphrase string, raw []byte) (*blob, error) {
	N, r, p := scryptParamsDefault()
	var salt [16]byte
	if _, err := rand.Read(salt[:] /* #nosec G404 */); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // key is unique per salt
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return &blob{V: sealedVersion, Salt: salt[:], N: N, R: r, P: p, Cipher: ct}, nil
}

// open decrypts bl with a key derived from passphrase.
func open(passphrase string, bl *blob) ([]byte, error) {
	if bl.V > sealedVersion {
		return nil, fmt.Errorf("unsupported credential envelope version %d", bl.V)
	}
	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
