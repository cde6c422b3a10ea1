package crypto

import (
	"fmt"

	"golang.org/x/crypto/nacl/sign"

	"pubident/internal/domain"
)

// SignatureSize is the length of the signature prefix of a signed blob.
const SignatureSize = sign.Overhead

// Sign wraps payload in a NaCl signed blob (signature || payload).
func Sign(priv domain.SignPrivateKey, payload []byte) domain.SignedBlob {
	k := [64]byte(priv)
	return domain.SignedBlob(sign.Sign(nil, payload, &k))
}

// VerifySignature checks blob against key and returns the signed payload.
func VerifySignature(blob domain.SignedBlob, key domain.SignPublicKey) ([]byte, error) {
	if len(blob) < SignatureSize {
		return nil, fmt.Errorf("%w: blob shorter than signature", domain.ErrInvalidSignature)
	}
	k := [32]byte(key)
	payload, ok := sign.Open(nil, blob, &k)
	if !ok {
		return nil, domain.ErrInvalidSignature
	}
	return payload, nil
}

// PeekPayload returns the payload bytes of blob without checking the
// signature. The result is untrusted.
func PeekPayload(blob domain.SignedBlob) ([]byte, error) {
	if len(blob) < SignatureSize {
		return nil, fmt.Errorf("%w: blob shorter than signature", domain.ErrMalformedPayload)
	}
	out := make([]byte, len(blob)-SignatureSize)
	copy(out, blob[SignatureSize:])
	return out, nil
}
