package pubident

import (
	"fmt"
	"time"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

const kindPerson = "person self-ident"

// IssuePersonSelfIdent builds a person self-ident stamped with the current
// time and signs it with the longterm keyring.
func IssuePersonSelfIdent(
	longterm domain.LongtermKeyring,
	keys domain.PurposeKeyring,
	poco domain.Poco,
	serverIdent domain.SignedBlob,
) (domain.SignedBlob, error) {
	return IssuePersonSelfIdentAt(longterm, keys, poco, serverIdent, time.Now())
}

// IssuePersonSelfIdentAt is IssuePersonSelfIdent with an explicit issue time.
func IssuePersonSelfIdentAt(
	longterm domain.LongtermKeyring,
	keys domain.PurposeKeyring,
	poco domain.Poco,
	serverIdent domain.SignedBlob,
	issuedAt time.Time,
) (domain.SignedBlob, error) {
	var mk domain.MessagingKeys
	for _, p := range domain.MessagingPurposes {
		k, err := keys.PublicKeyFor(domain.NamespaceMessaging, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kindPerson, err)
		}
		switch p {
		case domain.PurposeEnvelopeBox:
			mk.EnvelopeBoxPubKey = k.AsBox()
		case domain.PurposeBodyBox:
			mk.BodyBoxPubKey = k.AsBox()
		case domain.PurposeAnnounceSign:
			mk.AnnounceSignPubKey = k.AsSign()
		case domain.PurposeTellBox:
			mk.TellBoxPubKey = k.AsBox()
		}
	}

	ident := domain.PersonSelfIdent{
		Poco: poco.Clone(),
		Root: domain.RootAuth{
			RootSignPubKey:      longterm.RootPublicKey(),
			LongtermSignPubKey:  longterm.SigningPublicKey(),
			LongtermSignPubAuth: longterm.Authorization(),
		},
		IssuedAt:           domain.Millis(issuedAt),
		TransitServerIdent: serverIdent.Clone(),
		Keys:               mk,
	}
	return encodeAndSign(longterm, kindPerson, ident)
}

// VerifyPersonSelfIdent checks a person self-ident and returns its payload.
//
// Checks run in order: the blob is signed by the longterm key it names, that
// key is authorized by the named root key for signing at the check time, the
// root key matches WithExpectedRootKey if given, and the ident is no older
// than WithMaxAge if given. The embedded transit server ident is not
// verified.
func VerifyPersonSelfIdent(blob domain.SignedBlob, opts ...VerifyOption) (domain.PersonSelfIdent, error) {
	cfg := newVerifyConfig(opts)

	var claimed domain.PersonSelfIdent
	if err := peekInto(blob, kindPerson, &claimed); err != nil {
		return domain.PersonSelfIdent{}, err
	}
	if claimed.Root.LongtermSignPubKey.IsZero() {
		return domain.PersonSelfIdent{}, fmt.Errorf("%w: %s: no longterm key", domain.ErrMalformedPayload, kindPerson)
	}

	payload, err := crypto.VerifySignature(blob, claimed.Root.LongtermSignPubKey)
	if err != nil {
		return domain.PersonSelfIdent{}, fmt.Errorf("%s: %w", kindPerson, err)
	}
	var ident domain.PersonSelfIdent
	if err := decodePayload(payload, kindPerson, &ident); err != nil {
		return domain.PersonSelfIdent{}, err
	}

	if err := crypto.AssertLongtermKeyIsAuthorized(
		ident.Root.LongtermSignPubKey,
		domain.PurposeSign,
		ident.Root.RootSignPubKey,
		cfg.checkTime,
		ident.Root.LongtermSignPubAuth,
	); err != nil {
		return domain.PersonSelfIdent{}, fmt.Errorf("%s: %w", kindPerson, err)
	}

	if cfg.expectedRoot != nil && ident.Root.RootSignPubKey != *cfg.expectedRoot {
		return domain.PersonSelfIdent{}, fmt.Errorf("%s: %w", kindPerson, domain.ErrRootKeyMismatch)
	}

	if cfg.maxAge > 0 && cfg.checkTime.Sub(ident.IssuedTime()) > cfg.maxAge {
		return domain.PersonSelfIdent{}, fmt.Errorf("%s: issued %s: %w",
			kindPerson, ident.IssuedTime().Format(time.RFC3339), domain.ErrStaleIdent)
	}
	return ident, nil
}

// PeekPersonSelfIdent returns the payload of a person self-ident without
// any check.
func PeekPersonSelfIdent(blob domain.SignedBlob) (domain.Unverified[domain.PersonSelfIdent], error) {
	var ident domain.PersonSelfIdent
	if err := peekInto(blob, kindPerson, &ident); err != nil {
		return domain.Unverified[domain.PersonSelfIdent]{}, err
	}
	return domain.NewUnverified(ident), nil
}
