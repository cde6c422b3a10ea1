package interfaces

import (
	"encoding/json"
	"time"

	domaintypes "pubident/internal/domain/types"
)

// Signer signs canonical payload bytes into a signed blob.
type Signer interface {
	Sign(payload []byte) (domaintypes.SignedBlob, error)
}

// RootKeyring signs with a principal's root key.
type RootKeyring interface {
	Signer
	RootPublicKey() domaintypes.SignPublicKey
}

// BoxingKeyring exposes a principal's longterm boxing key.
type BoxingKeyring interface {
	BoxingPublicKey() domaintypes.BoxPublicKey
}

// LongtermKeyring signs with a longterm key that the root key has
// authorized, and carries that authorization.
type LongtermKeyring interface {
	Signer
	BoxingKeyring
	RootPublicKey() domaintypes.SignPublicKey
	SigningPublicKey() domaintypes.SignPublicKey
	Authorization() domaintypes.Authorization
}

// PurposeKeyring hands out public keys scoped by namespace and purpose.
type PurposeKeyring interface {
	PublicKeyFor(namespace string, purpose domaintypes.Purpose) (domaintypes.PublicKey, error)
}

// Pubring resolves the signer a payload names for itself against the keys
// it knows, then checks the signature and timestamp.
type Pubring interface {
	AssertGetSignedSelfNamingPayload(
		blob domaintypes.SignedBlob,
		asOf time.Time,
		signerField string,
		timestampField string,
		signerKeyClass domaintypes.KeyClass,
		timestampKeyClass domaintypes.KeyClass,
	) (json.RawMessage, error)
}
