package keyring

import (
	"fmt"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

// Longterm holds a root-authorized signing key and a boxing key.
type Longterm struct {
	rootPub  domain.SignPublicKey
	signPriv domain.SignPrivateKey
	signPub  domain.SignPublicKey
	boxPriv  domain.BoxPrivateKey
	boxPub   domain.BoxPublicKey
	auth     domain.Authorization
}

// Compile-time assertion that Longterm implements domain.LongtermKeyring.
var _ domain.LongtermKeyring = (*Longterm)(nil)

// NewLongterm restores a longterm keyring from its persisted record. The
// authorization is not checked for validity here; verifiers do that.
func NewLongterm(rec domain.LongtermKeyRecord) (*Longterm, error) {
	var derived domain.SignPublicKey
	copy(derived[:], rec.SignPriv[crypto.SeedSize:])
	if rec.SignPub.IsZero() || derived != rec.SignPub {
		return nil, fmt.Errorf("longterm: record key pair mismatch")
	}
	if rec.RootPub.IsZero() {
		return nil, fmt.Errorf("longterm: record has no root key")
	}
	if len(rec.Authorization) == 0 {
		return nil, fmt.Errorf("longterm: record has no authorization")
	}
	return &Longterm{
		rootPub:  rec.RootPub,
		signPriv: rec.SignPriv,
		signPub:  rec.SignPub,
		boxPriv:  rec.BoxPriv,
		boxPub:   rec.BoxPub,
		auth:     rec.Authorization.Clone(),
	}, nil
}

// Record returns the persisted form of the keyring.
func (l *Longterm) Record() domain.LongtermKeyRecord {
	return domain.LongtermKeyRecord{
		RootPub:       l.rootPub,
		SignPriv:      l.signPriv,
		SignPub:       l.signPub,
		BoxPriv:       l.boxPriv,
		BoxPub:        l.boxPub,
		Authorization: l.auth.Clone(),
	}
}

func (l *Longterm) RootPublicKey() domain.SignPublicKey    { return l.rootPub }
func (l *Longterm) SigningPublicKey() domain.SignPublicKey { return l.signPub }
func (l *Longterm) BoxingPublicKey() domain.BoxPublicKey   { return l.boxPub }

// Authorization returns a copy of the root-signed delegation token.
func (l *Longterm) Authorization() domain.Authorization { return l.auth.Clone() }

// Sign signs payload with the longterm signing key.
func (l *Longterm) Sign(payload []byte) (domain.SignedBlob, error) {
	return crypto.Sign(l.signPriv, payload), nil
}
