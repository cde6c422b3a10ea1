package pubident

import (
	"fmt"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

const kindServer = "server self-ident"

// IssueServerSelfIdent builds a server self-ident publishing the boxing key
// of boxing and signs it with the root keyring.
func IssueServerSelfIdent(
	root domain.RootKeyring,
	boxing domain.BoxingKeyring,
	details domain.ServerDetails,
) (domain.SignedBlob, error) {
	ident := domain.ServerSelfIdent{
		Tag:           details.Tag,
		URL:           details.URL,
		Meta:          details.Meta,
		PublicKey:     boxing.BoxingPublicKey(),
		RootPublicKey: root.RootPublicKey(),
	}
	return encodeAndSign(root, kindServer, ident)
}

// VerifyServerSelfIdent checks that blob is signed by the root key it names
// and returns its payload. It says nothing about which server the ident
// belongs to; callers match RootPublicKey or URL against what they expect.
func VerifyServerSelfIdent(blob domain.SignedBlob) (domain.ServerSelfIdent, error) {
	var claimed domain.ServerSelfIdent
	if err := peekInto(blob, kindServer, &claimed); err != nil {
		return domain.ServerSelfIdent{}, err
	}
	if claimed.RootPublicKey.IsZero() {
		return domain.ServerSelfIdent{}, fmt.Errorf("%w: %s: no root key", domain.ErrMalformedPayload, kindServer)
	}
	payload, err := crypto.VerifySignature(blob, claimed.RootPublicKey)
	if err != nil {
		return domain.ServerSelfIdent{}, fmt.Errorf("%s: %w", kindServer, err)
	}
	var ident domain.ServerSelfIdent
	if err := decodePayload(payload, kindServer, &ident); err != nil {
		return domain.ServerSelfIdent{}, err
	}
	return ident, nil
}

// PeekServerSelfIdentBoxingKey returns the boxing key of a server self-ident
// without any check. Use it only to look up data keyed by a server whose
// self-ident was verified earlier.
func PeekServerSelfIdentBoxingKey(blob domain.SignedBlob) (domain.Unverified[domain.BoxPublicKey], error) {
	u, err := PeekServerSelfIdent(blob)
	if err != nil {
		return domain.Unverified[domain.BoxPublicKey]{}, err
	}
	return domain.NewUnverified(u.ForDisplay().PublicKey), nil
}

// PeekServerSelfIdent returns the payload of a server self-ident without
// any check.
func PeekServerSelfIdent(blob domain.SignedBlob) (domain.Unverified[domain.ServerSelfIdent], error) {
	var ident domain.ServerSelfIdent
	if err := peekInto(blob, kindServer, &ident); err != nil {
		return domain.Unverified[domain.ServerSelfIdent]{}, err
	}
	return domain.NewUnverified(ident), nil
}
