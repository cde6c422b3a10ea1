package crypto

import (
	"github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/blake2b"

	"pubident/internal/domain"
)

const fingerprintBytes = 10

// Fingerprint returns a short base58 fingerprint of a public key.
//
// It hashes with BLAKE2b-256 and truncates to 10 bytes.
func Fingerprint(pub []byte) domain.Fingerprint {
	sum := blake2b.Sum256(pub)
	return domain.Fingerprint(base58.Encode(sum[:fingerprintBytes]))
}
