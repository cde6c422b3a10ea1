package types

import "time"

// AuthorizationClaims is what a root key signs when it delegates authority
// to another key. The window is half-open: [NotBefore, NotAfter).
type AuthorizationClaims struct {
	Purpose          Purpose       `json:"purpose"`
	RootSignPubKey   SignPublicKey `json:"rootSignPubKey"`
	AuthorizedPubKey PublicKey     `json:"authorizedPubKey"`
	NotBefore        int64         `json:"notBefore"`
	NotAfter         int64         `json:"notAfter"`
}

// ActiveAt reports whether t falls inside the validity window.
func (c AuthorizationClaims) ActiveAt(t time.Time) bool {
	ms := Millis(t)
	return ms >= c.NotBefore && ms < c.NotAfter
}

// Authorization is a root-signed AuthorizationClaims blob. It is opaque to
// identity payloads, which only carry it along for the delegation check.
type Authorization []byte

// Clone returns an independent copy of the token.
func (a Authorization) Clone() Authorization {
	if a == nil {
		return nil
	}
	return append(Authorization(nil), a...)
}
