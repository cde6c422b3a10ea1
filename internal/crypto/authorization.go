package crypto

import (
	"encoding/json"
	"fmt"
	"time"

	"pubident/internal/domain"
)

// IssueAuthorization signs claims with the root private key. The claims'
// RootSignPubKey must match rootPriv.
func IssueAuthorization(rootPriv domain.SignPrivateKey, claims domain.AuthorizationClaims) (domain.Authorization, error) {
	var pub domain.SignPublicKey
	copy(pub[:], rootPriv[SeedSize:])
	if claims.RootSignPubKey != pub {
		return nil, fmt.Errorf("authorization: claims name a different root key")
	}
	if claims.NotAfter <= claims.NotBefore {
		return nil, fmt.Errorf("authorization: empty validity window")
	}
	payload, err := CanonicalJSON(claims)
	if err != nil {
		return nil, fmt.Errorf("authorization: encode: %w", err)
	}
	return domain.Authorization(Sign(rootPriv, payload)), nil
}

// PeekAuthorization decodes the claims of auth without checking them.
func PeekAuthorization(auth domain.Authorization) (domain.Unverified[domain.AuthorizationClaims], error) {
	var claims domain.AuthorizationClaims
	payload, err := PeekPayload(domain.SignedBlob(auth))
	if err != nil {
		return domain.Unverified[domain.AuthorizationClaims]{}, err
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return domain.Unverified[domain.AuthorizationClaims]{}, fmt.Errorf("%w: authorization: %v", domain.ErrMalformedPayload, err)
	}
	return domain.NewUnverified(claims), nil
}

// AssertLongtermKeyIsAuthorized checks that auth is a token signed by root
// delegating purpose to longterm, and that asOf falls in its window. Every
// failure wraps domain.ErrInvalidDelegation.
func AssertLongtermKeyIsAuthorized(
	longterm domain.SignPublicKey,
	purpose domain.Purpose,
	root domain.SignPublicKey,
	asOf time.Time,
	auth domain.Authorization,
) error {
	if len(auth) == 0 {
		return fmt.Errorf("%w: missing authorization", domain.ErrInvalidDelegation)
	}
	payload, err := VerifySignature(domain.SignedBlob(auth), root)
	if err != nil {
		return fmt.Errorf("%w: not signed by root key", domain.ErrInvalidDelegation)
	}
	var claims domain.AuthorizationClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return fmt.Errorf("%w: malformed claims: %v", domain.ErrInvalidDelegation, err)
	}
	switch {
	case claims.RootSignPubKey != root:
		return fmt.Errorf("%w: claims name a different root key", domain.ErrInvalidDelegation)
	case claims.AuthorizedPubKey.AsSign() != longterm:
		return fmt.Errorf("%w: authorization is for a different key", domain.ErrInvalidDelegation)
	case claims.Purpose != purpose:
		return fmt.Errorf("%w: authorization is for purpose %q", domain.ErrInvalidDelegation, claims.Purpose)
	case !claims.ActiveAt(asOf):
		return fmt.Errorf("%w: not valid at %s", domain.ErrInvalidDelegation, asOf.UTC().Format(time.RFC3339))
	}
	return nil
}
