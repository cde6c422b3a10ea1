package keyring

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

// ErrUnknownPurpose is returned by PublicKeyFor for a namespace/purpose pair
// the keyring holds no key for.
var ErrUnknownPurpose = errors.New("no key for purpose")

type purposeKey struct {
	namespace string
	purpose   domain.Purpose
}

// Messaging holds purpose-scoped key pairs, one per (namespace, purpose).
type Messaging struct {
	keys map[purposeKey]domain.PurposeKeyRecord
}

// Compile-time assertion that Messaging implements domain.PurposeKeyring.
var _ domain.PurposeKeyring = (*Messaging)(nil)

// GenerateMessaging creates a keyring holding a fresh key for every
// messaging purpose.
func GenerateMessaging() (*Messaging, error) {
	m := &Messaging{keys: make(map[purposeKey]domain.PurposeKeyRecord, len(domain.MessagingPurposes))}
	for _, p := range domain.MessagingPurposes {
		rec := domain.PurposeKeyRecord{Namespace: domain.NamespaceMessaging, Purpose: p}
		if p.IsSigning() {
			priv, pub, err := crypto.GenerateSignKey(nil)
			if err != nil {
				return nil, fmt.Errorf("messaging: %s: %w", p, err)
			}
			rec.Priv, rec.Pub = priv.Slice(), domain.PublicKey(pub)
		} else {
			priv, pub, err := crypto.GenerateBoxKey(nil)
			if err != nil {
				return nil, fmt.Errorf("messaging: %s: %w", p, err)
			}
			rec.Priv, rec.Pub = priv.Slice(), domain.PublicKey(pub)
		}
		m.keys[purposeKey{rec.Namespace, rec.Purpose}] = rec
	}
	return m, nil
}

// NewMessaging restores a keyring from its persisted record.
func NewMessaging(rec domain.MessagingKeyRecord) (*Messaging, error) {
	m := &Messaging{keys: make(map[purposeKey]domain.PurposeKeyRecord, len(rec.Keys))}
	for _, k := range rec.Keys {
		want := len(domain.BoxPrivateKey{})
		if k.Purpose.IsSigning() {
			want = len(domain.SignPrivateKey{})
		}
		if len(k.Priv) != want {
			return nil, fmt.Errorf("messaging: %s/%s: bad private key length %d", k.Namespace, k.Purpose, len(k.Priv))
		}
		k.Priv = append([]byte(nil), k.Priv...)
		m.keys[purposeKey{k.Namespace, k.Purpose}] = k
	}
	return m, nil
}

// Record returns the persisted form of the keyring in a stable order.
func (m *Messaging) Record() domain.MessagingKeyRecord {
	var rec domain.MessagingKeyRecord
	for _, k := range m.keys {
		k.Priv = append([]byte(nil), k.Priv...)
		rec.Keys = append(rec.Keys, k)
	}
	slices.SortFunc(rec.Keys, func(a, b domain.PurposeKeyRecord) int {
		return cmp.Or(cmp.Compare(a.Namespace, b.Namespace), cmp.Compare(a.Purpose, b.Purpose))
	})
	return rec
}

// PublicKeyFor returns the public key held for namespace and purpose.
func (m *Messaging) PublicKeyFor(namespace string, purpose domain.Purpose) (domain.PublicKey, error) {
	k, ok := m.keys[purposeKey{namespace, purpose}]
	if !ok {
		return domain.PublicKey{}, fmt.Errorf("%w: %s/%s", ErrUnknownPurpose, namespace, purpose)
	}
	return k.Pub, nil
}
