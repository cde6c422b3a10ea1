package pubident_test

import (
	"testing"
	"time"

	"pubident/internal/domain"
	"pubident/internal/keyring"
	"pubident/internal/pubident"
)

type principal struct {
	root     *keyring.Root
	longterm *keyring.Longterm
	keys     *keyring.Messaging
}

func newPrincipal(t *testing.T, notBefore time.Time, validFor time.Duration) principal {
	t.Helper()
	root, _, err := keyring.GenerateRoot()
	if err != nil {
		t.Fatalf("generate root: %v", err)
	}
	lt, err := root.IssueLongtermAt(domain.PurposeSign, notBefore, validFor)
	if err != nil {
		t.Fatalf("issue longterm: %v", err)
	}
	keys, err := keyring.GenerateMessaging()
	if err != nil {
		t.Fatalf("generate messaging: %v", err)
	}
	return principal{root: root, longterm: lt, keys: keys}
}

func newServerBlob(t *testing.T) (principal, domain.SignedBlob) {
	t.Helper()
	srv := newPrincipal(t, time.Now().Add(-time.Hour), 24*time.Hour)
	blob, err := pubident.IssueServerSelfIdent(srv.root, srv.longterm, domain.ServerDetails{
		Tag:  "srv1",
		URL:  "https://example",
		Meta: domain.ServerMeta{DisplayName: "Example Server"},
	})
	if err != nil {
		t.Fatalf("issue server self-ident: %v", err)
	}
	return srv, blob
}

func issuePerson(t *testing.T, p principal, poco domain.Poco, server domain.SignedBlob, at time.Time) domain.SignedBlob {
	t.Helper()
	blob, err := pubident.IssuePersonSelfIdentAt(p.longterm, p.keys, poco, server, at)
	if err != nil {
		t.Fatalf("issue person self-ident: %v", err)
	}
	return blob
}
