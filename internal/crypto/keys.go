package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/sign"

	"pubident/internal/domain"
)

// SeedSize is the length of the seed SignKeyFromSeed expects.
const SeedSize = ed25519.SeedSize

// GenerateSignKey returns a new signing key pair read from r, or from
// crypto/rand when r is nil.
func GenerateSignKey(r io.Reader) (priv domain.SignPrivateKey, pub domain.SignPublicKey, err error) {
	if r == nil {
		r = rand.Reader
	}
	pk, sk, err := sign.GenerateKey(r)
	if err != nil {
		return priv, pub, err
	}
	priv, pub = domain.SignPrivateKey(*sk), domain.SignPublicKey(*pk)
	return priv, pub, nil
}

// SignKeyFromSeed deterministically derives a signing key pair from seed.
func SignKeyFromSeed(seed [SeedSize]byte) (priv domain.SignPrivateKey, pub domain.SignPublicKey) {
	sk := ed25519.NewKeyFromSeed(seed[:])
	copy(priv[:], sk)
	copy(pub[:], sk[SeedSize:])
	return priv, pub
}

// GenerateBoxKey returns a new boxing key pair read from r, or from
// crypto/rand when r is nil.
func GenerateBoxKey(r io.Reader) (priv domain.BoxPrivateKey, pub domain.BoxPublicKey, err error) {
	if r == nil {
		r = rand.Reader
	}
	pk, sk, err := box.GenerateKey(r)
	if err != nil {
		return priv, pub, err
	}
	priv, pub = domain.BoxPrivateKey(*sk), domain.BoxPublicKey(*pk)
	return priv, pub, nil
}
