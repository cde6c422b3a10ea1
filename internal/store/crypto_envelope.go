package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"pubident/internal/util/memzero"
)

const (
	// The current supported version of the sealed keyring format stored on disk.
	keystoreFormatVersion = 1

	// Upper bounds on scrypt parameters read back from disk. 128*N*r bytes
	// of memory are needed, so maxScryptMem caps N and r together.
	maxScryptN   = 1 << 20
	maxScryptR   = 32
	maxScryptP   = 16
	maxScryptMem = 256 << 20
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed file has been modified or corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keyring")
)

// sealed is the on-disk JSON structure holding the ciphertext and KDF parameters.
type sealed struct {
	V      int    `json:"v"`
	Kind   string `json:"kind"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw into a JSON envelope.
// kind is bound as associated data together with the salt.
func seal(passphrase, kind string, raw []byte, N, r, p int) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is unique per seal
	ct := aead.Seal(nil, nonce[:], raw, additionalData(kind, salt[:]))

	return json.Marshal(sealed{
		V:      keystoreFormatVersion,
		Kind:   kind,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
}

// open decrypts a JSON envelope produced by seal.
func open(passphrase, kind string, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%s keyring: %w", kind, err)
	}
	if s.V > keystoreFormatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", s.V)
	}
	if s.Kind != kind {
		return nil, fmt.Errorf("%s keyring: file holds a %q keyring", kind, s.Kind)
	}

	if err := checkScryptParams(s.N, s.R, s.P); err != nil {
		return nil, fmt.Errorf("%s keyring: %w", kind, err)
	}

	key, err := scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], s.Cipher, additionalData(kind, s.Salt))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func checkScryptParams(n, r, p int) error {
	if n < 2 || n > maxScryptN || r < 1 || r > maxScryptR || p < 1 || p > maxScryptP ||
		128*n*r > maxScryptMem {
		return fmt.Errorf("%w: scrypt parameters N=%d r=%d p=%d out of range", ErrWrongPassphrase, n, r, p)
	}
	return nil
}

func additionalData(kind string, salt []byte) []byte {
	return append([]byte(kind+":"), salt...)
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
