package keyring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

type pubringEntry struct {
	class domain.KeyClass
	auth  domain.Authorization
}

// Pubring is the public keys of one person: a root key and the longterm
// keys it has authorized to sign.
type Pubring struct {
	mu   sync.RWMutex
	root domain.SignPublicKey
	keys map[domain.SignPublicKey]pubringEntry
}

// Compile-time assertion that Pubring implements domain.Pubring.
var _ domain.Pubring = (*Pubring)(nil)

// NewPubring returns a pubring that knows only the given root key.
func NewPubring(root domain.SignPublicKey) *Pubring {
	return &Pubring{
		root: root,
		keys: map[domain.SignPublicKey]pubringEntry{root: {class: domain.KeyClassRoot}},
	}
}

// NewPubringFromSelfIdent builds a pubring from a verified person
// self-ident: its root key plus the longterm key and authorization it names.
func NewPubringFromSelfIdent(ident domain.PersonSelfIdent) (*Pubring, error) {
	p := NewPubring(ident.Root.RootSignPubKey)
	if err := p.AddLongterm(ident.Root.LongtermSignPubKey, ident.Root.LongtermSignPubAuth); err != nil {
		return nil, err
	}
	return p, nil
}

// RootPublicKey returns the root key the pubring is anchored on.
func (p *Pubring) RootPublicKey() domain.SignPublicKey { return p.root }

// AddLongterm records a longterm key with its authorization. The token must
// be signed by the pubring's root key for this key; its time window is only
// checked when a payload is verified.
func (p *Pubring) AddLongterm(key domain.SignPublicKey, auth domain.Authorization) error {
	claims, err := p.verifiedClaims(key, auth)
	if err != nil {
		return err
	}
	if claims.Purpose != domain.PurposeSign {
		return fmt.Errorf("%w: longterm key authorized for %q", domain.ErrInvalidDelegation, claims.Purpose)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys[key] = pubringEntry{class: domain.KeyClassLongterm, auth: auth.Clone()}
	return nil
}

// Has reports whether key is known with the given class.
func (p *Pubring) Has(key domain.SignPublicKey, class domain.KeyClass) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.keys[key]
	return ok && e.class == class
}

// AssertGetSignedSelfNamingPayload verifies a blob whose payload names its
// own signer in signerField, and returns the payload.
//
// The named key must be known with signerKeyClass and must have produced
// the signature. A longterm signer must be authorized at asOf. The
// timestamp in timestampField must fall inside the validity window of the
// timestampKeyClass key (the signer's own window for LONGTERM; ROOT keys
// carry no window).
func (p *Pubring) AssertGetSignedSelfNamingPayload(
	blob domain.SignedBlob,
	asOf time.Time,
	signerField string,
	timestampField string,
	signerKeyClass domain.KeyClass,
	timestampKeyClass domain.KeyClass,
) (json.RawMessage, error) {
	raw, err := crypto.PeekPayload(blob)
	if err != nil {
		return nil, err
	}
	if err := assertUnambiguousKeys(raw); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	var signer domain.SignPublicKey
	if err := unmarshalField(fields, signerField, &signer); err != nil {
		return nil, err
	}
	var ts int64
	if err := unmarshalField(fields, timestampField, &ts); err != nil {
		return nil, err
	}

	p.mu.RLock()
	entry, ok := p.keys[signer]
	p.mu.RUnlock()
	if !ok || entry.class != signerKeyClass {
		return nil, fmt.Errorf("%w: %s key %s", domain.ErrUnknownSigner, signerKeyClass, crypto.Fingerprint(signer.Slice()))
	}

	payload, err := crypto.VerifySignature(blob, signer)
	if err != nil {
		return nil, err
	}

	if entry.class == domain.KeyClassLongterm {
		if err := crypto.AssertLongtermKeyIsAuthorized(signer, domain.PurposeSign, p.root, asOf, entry.auth); err != nil {
			return nil, err
		}
	}

	if timestampKeyClass == domain.KeyClassLongterm {
		if entry.class != domain.KeyClassLongterm {
			return nil, fmt.Errorf("%w: no longterm window for timestamp", domain.ErrInvalidDelegation)
		}
		claims, err := p.verifiedClaims(signer, entry.auth)
		if err != nil {
			return nil, err
		}
		if !claims.ActiveAt(domain.FromMillis(ts)) {
			return nil, fmt.Errorf("%w: %s outside signer validity", domain.ErrInvalidDelegation, timestampField)
		}
	}
	return json.RawMessage(payload), nil
}

// verifiedClaims checks that auth is signed by the root for key and
// returns its claims.
func (p *Pubring) verifiedClaims(key domain.SignPublicKey, auth domain.Authorization) (domain.AuthorizationClaims, error) {
	if _, err := crypto.VerifySignature(domain.SignedBlob(auth), p.root); err != nil {
		return domain.AuthorizationClaims{}, fmt.Errorf("%w: not signed by root key", domain.ErrInvalidDelegation)
	}
	u, err := crypto.PeekAuthorization(auth)
	if err != nil {
		return domain.AuthorizationClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidDelegation, err)
	}
	claims := u.AssumeVerified()
	if claims.RootSignPubKey != p.root || claims.AuthorizedPubKey.AsSign() != key {
		return domain.AuthorizationClaims{}, fmt.Errorf("%w: authorization does not match key", domain.ErrInvalidDelegation)
	}
	return claims, nil
}

func unmarshalField(fields map[string]json.RawMessage, name string, out any) error {
	v, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing %q", domain.ErrMalformedPayload, name)
	}
	if err := json.Unmarshal(v, out); err != nil {
		return fmt.Errorf("%w: %q: %v", domain.ErrMalformedPayload, name, err)
	}
	return nil
}

// assertUnambiguousKeys rejects a top-level object with a repeated key or
// with two keys that differ only in case. encoding/json matches struct
// fields case-insensitively and keeps the last match, so either form would
// let the fields checked here differ from the ones a caller decodes.
func assertUnambiguousKeys(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("%w: payload is not an object", domain.ErrMalformedPayload)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
		}
		key, _ := tok.(string)
		for _, k := range keys {
			if strings.EqualFold(k, key) {
				return fmt.Errorf("%w: ambiguous key %q", domain.ErrMalformedPayload, key)
			}
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
		}
	}
	return nil
}
