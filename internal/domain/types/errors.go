package types

import "errors"

var (
	// ErrMalformedPayload is returned when a blob cannot be parsed, even
	// without checking its signature.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrInvalidSignature is returned when a blob does not verify against
	// the claimed or expected key.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidDelegation is returned when a longterm key's authorization
	// is absent, malformed, or not valid at the check time.
	ErrInvalidDelegation = errors.New("invalid key delegation")
	// ErrRootKeyMismatch is returned when a self-ident names a different
	// root key than the caller expected.
	ErrRootKeyMismatch = errors.New("self-ident is not for the expected root key")
	// ErrStaleIdent is returned when a self-ident is older than the caller's
	// maximum accepted age.
	ErrStaleIdent = errors.New("self-ident is too old")
	// ErrUnknownSigner is returned when a pubring does not know the key a
	// payload names as its signer.
	ErrUnknownSigner = errors.New("signer is not known to the pubring")
	// ErrKeyringNotFound is returned when a requested keyring was never saved.
	ErrKeyringNotFound = errors.New("keyring not found")
)
