package pubident_test

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"pubident/internal/domain"
	"pubident/internal/keyring"
	"pubident/internal/pubident"
)

func pubringFor(t *testing.T, p principal) *keyring.Pubring {
	t.Helper()
	ring := keyring.NewPubring(p.root.RootPublicKey())
	if err := ring.AddLongterm(p.longterm.SigningPublicKey(), p.longterm.Authorization()); err != nil {
		t.Fatalf("pubring: %v", err)
	}
	return ring
}

func TestScenario_ServerPersonOtherPerson(t *testing.T) {
	_, server := newServerBlob(t)
	srvIdent, err := pubident.VerifyServerSelfIdent(server)
	if err != nil {
		t.Fatalf("verify server: %v", err)
	}
	if srvIdent.Tag != "srv1" {
		t.Fatalf("tag: %q", srvIdent.Tag)
	}

	alice := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	aliceBlob, err := pubident.IssuePersonSelfIdent(alice.longterm, alice.keys, domain.Poco{"displayName": "Alice"}, server)
	if err != nil {
		t.Fatalf("issue alice: %v", err)
	}
	if _, err := pubident.VerifyPersonSelfIdent(aliceBlob); err != nil {
		t.Fatalf("verify alice: %v", err)
	}
	bob := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	if _, err := pubident.VerifyPersonSelfIdent(aliceBlob, pubident.WithExpectedRootKey(bob.root.RootPublicKey())); !errors.Is(err, domain.ErrRootKeyMismatch) {
		t.Fatalf("mismatched root: got %v", err)
	}

	issued := time.Now()
	vouch, err := pubident.IssueOtherPersonIdentAt(bob.longterm, aliceBlob, domain.Poco{"nickname": "Ally"}, issued)
	if err != nil {
		t.Fatalf("issue other-person ident: %v", err)
	}
	got, err := pubident.VerifyOtherPersonIdent(vouch, pubringFor(t, bob), issued.Add(time.Second))
	if err != nil {
		t.Fatalf("verify other-person ident: %v", err)
	}
	if got.LocalPoco.Nickname() != "Ally" {
		t.Fatalf("nickname: %q", got.LocalPoco.Nickname())
	}
	if got.AssertedBy != bob.longterm.SigningPublicKey() {
		t.Fatal("assertedBy mismatch")
	}
	if !bytes.Equal(got.PersonSelfIdent, aliceBlob) {
		t.Fatal("embedded self-ident altered")
	}

	subject, err := pubident.VerifySubject(got, pubident.WithExpectedRootKey(alice.root.RootPublicKey()))
	if err != nil {
		t.Fatalf("verify subject: %v", err)
	}
	if subject.Poco.DisplayName() != "Alice" {
		t.Fatalf("subject display name: %q", subject.Poco.DisplayName())
	}
}

func TestOtherPersonIdent_DoesNotVerifySubject(t *testing.T) {
	bob := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	junk := domain.SignedBlob(bytes.Repeat([]byte{0xAB}, 100))

	vouch, err := pubident.IssueOtherPersonIdent(bob.longterm, junk, domain.Poco{"nickname": "Junk"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := pubident.VerifyOtherPersonIdent(vouch, pubringFor(t, bob), time.Now())
	if err != nil {
		t.Fatalf("outer verify should pass: %v", err)
	}
	if _, err := pubident.VerifySubject(got); !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("subject: got %v", err)
	}
}

func TestOtherPersonIdent_WrongPubring_UnknownSigner(t *testing.T) {
	_, server := newServerBlob(t)
	alice := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	bob := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	carol := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)

	vouch, err := pubident.IssueOtherPersonIdent(bob.longterm, issuePerson(t, alice, nil, server, time.Now()), nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := pubident.VerifyOtherPersonIdent(vouch, pubringFor(t, carol), time.Now()); !errors.Is(err, domain.ErrUnknownSigner) {
		t.Fatalf("got %v", err)
	}
}

func TestOtherPersonIdent_ExpiredAsserter_InvalidDelegation(t *testing.T) {
	start := time.Now().Add(-10 * time.Hour)
	bob := newPrincipal(t, start, time.Hour)

	vouch, err := pubident.IssueOtherPersonIdentAt(bob.longterm, domain.SignedBlob("x"), nil, start.Add(time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	ring := pubringFor(t, bob)
	if _, err := pubident.VerifyOtherPersonIdent(vouch, ring, time.Now()); !errors.Is(err, domain.ErrInvalidDelegation) {
		t.Fatalf("got %v", err)
	}
	if _, err := pubident.VerifyOtherPersonIdent(vouch, ring, start.Add(30*time.Minute)); err != nil {
		t.Fatalf("inside window: %v", err)
	}
}

func TestOtherPersonIdent_FlippedByte_InvalidSignature(t *testing.T) {
	bob := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	vouch, err := pubident.IssueOtherPersonIdent(bob.longterm, domain.SignedBlob("x"), domain.Poco{"nickname": "Ally"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	bad := vouch.Clone()
	bad[10] ^= 0x01
	if _, err := pubident.VerifyOtherPersonIdent(bad, pubringFor(t, bob), time.Now()); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("got %v", err)
	}
}

func TestOtherPersonIdent_Peek(t *testing.T) {
	bob := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	vouch, err := pubident.IssueOtherPersonIdent(bob.longterm, domain.SignedBlob("subject"), domain.Poco{"nickname": "Ally"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	peeked, err := pubident.PeekOtherPersonIdent(vouch)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	verified, err := pubident.VerifyOtherPersonIdent(vouch, pubringFor(t, bob), time.Now())
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !reflect.DeepEqual(peeked.ForDisplay(), verified) {
		t.Fatalf("peek %+v != verify %+v", peeked.ForDisplay(), verified)
	}
}

func TestOtherPersonIdent_IssuedOutsideAsserterWindow_InvalidDelegation(t *testing.T) {
	start := time.Now().Add(-30 * time.Minute)
	bob := newPrincipal(t, start, time.Hour)
	ring := pubringFor(t, bob)

	for name, issued := range map[string]time.Time{
		"before window": start.Add(-time.Hour),
		"after window":  start.Add(2 * time.Hour),
	} {
		t.Run(name, func(t *testing.T) {
			vouch, err := pubident.IssueOtherPersonIdentAt(bob.longterm, domain.SignedBlob("x"), nil, issued)
			if err != nil {
				t.Fatalf("issue: %v", err)
			}
			// asOf is inside the window; only issuedAt is out of range.
			if _, err := pubident.VerifyOtherPersonIdent(vouch, ring, time.Now()); !errors.Is(err, domain.ErrInvalidDelegation) {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestOtherPersonIdent_CaseFoldedKeys_Malformed(t *testing.T) {
	bob := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	carol := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	ring := pubringFor(t, bob)
	now := time.Now()
	by := bob.longterm.SigningPublicKey().String()
	other := carol.longterm.SigningPublicKey().String()

	payloads := map[string]string{
		"IssuedAt":   fmt.Sprintf(`{"assertedBy":%q,"issuedAt":%d,"IssuedAt":1}`, by, domain.Millis(now)),
		"AssertedBy": fmt.Sprintf(`{"assertedBy":%q,"issuedAt":%d,"AssertedBy":%q}`, by, domain.Millis(now), other),
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			blob, err := bob.longterm.Sign([]byte(payload))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			got, err := pubident.VerifyOtherPersonIdent(blob, ring, now)
			if !errors.Is(err, domain.ErrMalformedPayload) {
				t.Fatalf("got %+v, %v", got, err)
			}
		})
	}
}
