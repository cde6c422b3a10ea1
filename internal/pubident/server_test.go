package pubident_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"pubident/internal/crypto"
	"pubident/internal/domain"
	"pubident/internal/pubident"
)

func TestServerSelfIdent_RoundTrip(t *testing.T) {
	srv, blob := newServerBlob(t)

	got, err := pubident.VerifyServerSelfIdent(blob)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Tag != "srv1" || got.URL != "https://example" || got.Meta.DisplayName != "Example Server" {
		t.Fatalf("details mismatch: %+v", got)
	}
	if got.RootPublicKey != srv.root.RootPublicKey() {
		t.Fatal("root key mismatch")
	}
	if got.PublicKey != srv.longterm.BoxingPublicKey() {
		t.Fatal("boxing key mismatch")
	}
}

func TestServerSelfIdent_FlippedByte_InvalidSignature(t *testing.T) {
	_, blob := newServerBlob(t)

	// Flip a byte inside the signature so the payload still parses.
	bad := blob.Clone()
	bad[5] ^= 0x01
	if _, err := pubident.VerifyServerSelfIdent(bad); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("got %v", err)
	}
}

func TestServerSelfIdent_SignedByOtherRoot_InvalidSignature(t *testing.T) {
	srv, _ := newServerBlob(t)
	impostor, _ := newServerBlob(t)

	payload, err := crypto.CanonicalJSON(domain.ServerSelfIdent{
		Tag:           "srv1",
		URL:           "https://example",
		PublicKey:     impostor.longterm.BoxingPublicKey(),
		RootPublicKey: srv.root.RootPublicKey(),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	forged, err := impostor.root.Sign(payload)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := pubident.VerifyServerSelfIdent(forged); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("got %v", err)
	}
}

func TestServerSelfIdent_Garbage_Malformed(t *testing.T) {
	for _, blob := range []domain.SignedBlob{nil, domain.SignedBlob("short"), domain.SignedBlob(bytes.Repeat([]byte{'x'}, 80))} {
		if _, err := pubident.VerifyServerSelfIdent(blob); !errors.Is(err, domain.ErrMalformedPayload) {
			t.Fatalf("verify %q: got %v", blob, err)
		}
		if _, err := pubident.PeekServerSelfIdent(blob); !errors.Is(err, domain.ErrMalformedPayload) {
			t.Fatalf("peek %q: got %v", blob, err)
		}
	}
}

func TestServerSelfIdent_Peek(t *testing.T) {
	srv, blob := newServerBlob(t)

	key, err := pubident.PeekServerSelfIdentBoxingKey(blob)
	if err != nil {
		t.Fatalf("peek key: %v", err)
	}
	if key.AssumeVerified() != srv.longterm.BoxingPublicKey() {
		t.Fatal("peeked boxing key mismatch")
	}

	peeked, err := pubident.PeekServerSelfIdent(blob)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	verified, err := pubident.VerifyServerSelfIdent(blob)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !reflect.DeepEqual(peeked.ForDisplay(), verified) {
		t.Fatalf("peek %+v != verify %+v", peeked.ForDisplay(), verified)
	}

	// Peek skips the signature check.
	bad := blob.Clone()
	bad[0] ^= 0xff
	if _, err := pubident.PeekServerSelfIdent(bad); err != nil {
		t.Fatalf("peek of bad signature: %v", err)
	}
}
