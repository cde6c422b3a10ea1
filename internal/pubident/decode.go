package pubident

import (
	"encoding/json"
	"fmt"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

// decodePayload parses payload bytes into out, mapping any failure to
// domain.ErrMalformedPayload.
func decodePayload(payload []byte, kind string, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformedPayload, kind, err)
	}
	return nil
}

// peekInto decodes the unverified payload of blob into out.
func peekInto(blob domain.SignedBlob, kind string, out any) error {
	payload, err := crypto.PeekPayload(blob)
	if err != nil {
		return err
	}
	return decodePayload(payload, kind, out)
}

func encodeAndSign(s domain.Signer, kind string, v any) (domain.SignedBlob, error) {
	payload, err := crypto.CanonicalJSON(v)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", kind, err)
	}
	blob, err := s.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: sign: %w", kind, err)
	}
	return blob, nil
}
