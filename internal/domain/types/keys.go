package types

import (
	"fmt"

	"github.com/mr-tron/base58/base58"
)

// KeySize is the length of every public key carried in an identity payload.
const KeySize = 32

// SignPublicKey is an Ed25519 (NaCl sign) public key.
type SignPublicKey [KeySize]byte

// Slice returns the key as a []byte.
func (k SignPublicKey) Slice() []byte { return k[:] }

// IsZero reports whether the key is unset.
func (k SignPublicKey) IsZero() bool { return k == SignPublicKey{} }

// String returns the base58 form of the key.
func (k SignPublicKey) String() string { return base58.Encode(k[:]) }

// MarshalText encodes the key as base58.
func (k SignPublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a base58 key.
func (k *SignPublicKey) UnmarshalText(text []byte) error {
	return decodeKey(k[:], text, "sign public key")
}

// BoxPublicKey is a Curve25519 (NaCl box) public key.
type BoxPublicKey [KeySize]byte

// Slice returns the key as a []byte.
func (k BoxPublicKey) Slice() []byte { return k[:] }

// IsZero reports whether the key is unset.
func (k BoxPublicKey) IsZero() bool { return k == BoxPublicKey{} }

// String returns the base58 form of the key.
func (k BoxPublicKey) String() string { return base58.Encode(k[:]) }

// MarshalText encodes the key as base58.
func (k BoxPublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a base58 key.
func (k *BoxPublicKey) UnmarshalText(text []byte) error {
	return decodeKey(k[:], text, "box public key")
}

// PublicKey is a purpose-neutral public key as handed out by a purpose-scoped
// keyring. Whether it is a signing or a boxing key depends on the purpose it
// was requested for.
type PublicKey [KeySize]byte

// Slice returns the key as a []byte.
func (k PublicKey) Slice() []byte { return k[:] }

// String returns the base58 form of the key.
func (k PublicKey) String() string { return base58.Encode(k[:]) }

// MarshalText encodes the key as base58.
func (k PublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a base58 key.
func (k *PublicKey) UnmarshalText(text []byte) error {
	return decodeKey(k[:], text, "public key")
}

// AsSign reinterprets the key as a signing key.
func (k PublicKey) AsSign() SignPublicKey { return SignPublicKey(k) }

// AsBox reinterprets the key as a boxing key.
func (k PublicKey) AsBox() BoxPublicKey { return BoxPublicKey(k) }

// SignPrivateKey is an Ed25519 private key in NaCl layout (seed || public).
type SignPrivateKey [64]byte

// Slice returns the key as a []byte.
func (k SignPrivateKey) Slice() []byte { return k[:] }

// BoxPrivateKey is a Curve25519 private scalar.
type BoxPrivateKey [KeySize]byte

// Slice returns the key as a []byte.
func (k BoxPrivateKey) Slice() []byte { return k[:] }

// ParseSignPublicKey decodes a base58 signing key.
func ParseSignPublicKey(s string) (SignPublicKey, error) {
	var k SignPublicKey
	err := k.UnmarshalText([]byte(s))
	return k, err
}

func decodeKey(dst []byte, text []byte, what string) error {
	raw, err := base58.Decode(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("%s: want %d bytes, got %d", what, len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
