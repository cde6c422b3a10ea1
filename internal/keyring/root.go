package keyring

import (
	"fmt"
	"time"

	"pubident/internal/crypto"
	"pubident/internal/domain"
	"pubident/internal/util/memzero"
)

// Root holds a principal's root signing key pair.
type Root struct {
	priv domain.SignPrivateKey
	pub  domain.SignPublicKey
}

// Compile-time assertion that Root implements domain.RootKeyring.
var _ domain.RootKeyring = (*Root)(nil)

// GenerateRoot creates a root keyring from a fresh recovery phrase and
// returns the phrase alongside it. The phrase is the only backup of the key.
func GenerateRoot() (*Root, string, error) {
	mnemonic, err := NewMnemonic()
	if err != nil {
		return nil, "", fmt.Errorf("root: mnemonic: %w", err)
	}
	r, err := NewRootFromMnemonic(mnemonic)
	if err != nil {
		return nil, "", err
	}
	return r, mnemonic, nil
}

// NewRootFromMnemonic deterministically rebuilds a root keyring from its
// recovery phrase.
func NewRootFromMnemonic(mnemonic string) (*Root, error) {
	mnemonic, err := NormalizeMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	seed, err := rootSeedFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("root: derive seed: %w", err)
	}
	defer memzero.Array(&seed)

	priv, pub := crypto.SignKeyFromSeed(seed)
	return &Root{priv: priv, pub: pub}, nil
}

// NewRoot restores a root keyring from its persisted record.
func NewRoot(rec domain.RootKeyRecord) (*Root, error) {
	var derived domain.SignPublicKey
	copy(derived[:], rec.SignPriv[crypto.SeedSize:])
	if rec.SignPub.IsZero() || derived != rec.SignPub {
		return nil, fmt.Errorf("root: record key pair mismatch")
	}
	return &Root{priv: rec.SignPriv, pub: rec.SignPub}, nil
}

// Record returns the persisted form of the keyring.
func (r *Root) Record() domain.RootKeyRecord {
	return domain.RootKeyRecord{SignPriv: r.priv, SignPub: r.pub}
}

// RootPublicKey returns the root signing public key.
func (r *Root) RootPublicKey() domain.SignPublicKey { return r.pub }

// Sign signs payload with the root key.
func (r *Root) Sign(payload []byte) (domain.SignedBlob, error) {
	return crypto.Sign(r.priv, payload), nil
}

// IssueLongterm creates a longterm keyring whose signing key is authorized
// for purpose from now until now+validFor.
func (r *Root) IssueLongterm(purpose domain.Purpose, validFor time.Duration) (*Longterm, error) {
	return r.IssueLongtermAt(purpose, time.Now(), validFor)
}

// IssueLongtermAt is IssueLongterm with an explicit start of validity.
func (r *Root) IssueLongtermAt(purpose domain.Purpose, notBefore time.Time, validFor time.Duration) (*Longterm, error) {
	if validFor <= 0 {
		return nil, fmt.Errorf("longterm: validity must be positive, got %s", validFor)
	}
	signPriv, signPub, err := crypto.GenerateSignKey(nil)
	if err != nil {
		return nil, fmt.Errorf("longterm: sign key: %w", err)
	}
	boxPriv, boxPub, err := crypto.GenerateBoxKey(nil)
	if err != nil {
		return nil, fmt.Errorf("longterm: box key: %w", err)
	}
	auth, err := crypto.IssueAuthorization(r.priv, domain.AuthorizationClaims{
		Purpose:          purpose,
		RootSignPubKey:   r.pub,
		AuthorizedPubKey: domain.PublicKey(signPub),
		NotBefore:        domain.Millis(notBefore),
		NotAfter:         domain.Millis(notBefore.Add(validFor)),
	})
	if err != nil {
		return nil, fmt.Errorf("longterm: %w", err)
	}
	return &Longterm{
		rootPub:  r.pub,
		signPriv: signPriv,
		signPub:  signPub,
		boxPriv:  boxPriv,
		boxPub:   boxPub,
		auth:     auth,
	}, nil
}
