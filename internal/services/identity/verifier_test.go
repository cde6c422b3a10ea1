package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"pubident/internal/domain"
	"pubident/internal/services/identity"
)

func TestVerifier_RateLimitPerSigner(t *testing.T) {
	ctx := context.Background()
	srvA := newService(t, nil)
	setupPrincipal(t, srvA, false)
	blobA, err := srvA.IssueServerSelfIdent(ctx, pass, domain.ServerDetails{Tag: "a"})
	if err != nil {
		t.Fatalf("issue a: %v", err)
	}
	srvB := newService(t, nil)
	setupPrincipal(t, srvB, false)
	blobB, err := srvB.IssueServerSelfIdent(ctx, pass, domain.ServerDetails{Tag: "b"})
	if err != nil {
		t.Fatalf("issue b: %v", err)
	}

	m := identity.NewMetrics(prometheus.NewRegistry())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := identity.NewVerifier(identity.VerifierOptions{
		Logger:  quiet,
		Metrics: m,
		Limiter: identity.NewSignerLimiter(1, 1),
		Now:     func() time.Time { return now },
	})

	if _, err := v.VerifyServerSelfIdent(ctx, blobA); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := v.VerifyServerSelfIdent(ctx, blobA); !errors.Is(err, identity.ErrRateLimited) {
		t.Fatalf("second: got %v", err)
	}
	// Another signer has its own bucket.
	if _, err := v.VerifyServerSelfIdent(ctx, blobB); err != nil {
		t.Fatalf("other signer: %v", err)
	}
	now = now.Add(time.Second)
	if _, err := v.VerifyServerSelfIdent(ctx, blobA); err != nil {
		t.Fatalf("after refill: %v", err)
	}

	if n := testutil.ToFloat64(m.Verified().WithLabelValues("server", "rate_limited")); n != 1 {
		t.Fatalf("rate_limited = %v", n)
	}
	if n := testutil.ToFloat64(m.Verified().WithLabelValues("server", "ok")); n != 3 {
		t.Fatalf("ok = %v", n)
	}
}

func TestVerifier_ForgedBlobsDoNotDrainSignerBucket(t *testing.T) {
	ctx := context.Background()
	srv := newService(t, nil)
	setupPrincipal(t, srv, false)
	genuine, err := srv.IssueServerSelfIdent(ctx, pass, domain.ServerDetails{Tag: "a"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Same payload, broken signature: still names the genuine root key.
	forged := genuine.Clone()
	forged[0] ^= 0xFF

	m := identity.NewMetrics(prometheus.NewRegistry())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := identity.NewVerifier(identity.VerifierOptions{
		Logger:  quiet,
		Metrics: m,
		Limiter: identity.NewSignerLimiter(1, 3),
		Now:     func() time.Time { return now },
	})

	for i := 0; i < 10; i++ {
		if _, err := v.VerifyServerSelfIdent(ctx, forged); !errors.Is(err, domain.ErrInvalidSignature) {
			t.Fatalf("forged %d: got %v", i, err)
		}
	}
	if _, err := v.VerifyServerSelfIdent(ctx, genuine); err != nil {
		t.Fatalf("genuine after flood: %v", err)
	}
	if n := testutil.ToFloat64(m.Verified().WithLabelValues("server", "rate_limited")); n != 0 {
		t.Fatalf("rate_limited = %v", n)
	}
}

func TestVerifier_MaxAge(t *testing.T) {
	ctx := context.Background()
	srv := newService(t, nil)
	setupPrincipal(t, srv, false)
	serverBlob, err := srv.IssueServerSelfIdent(ctx, pass, domain.ServerDetails{Tag: "s"})
	if err != nil {
		t.Fatalf("issue server: %v", err)
	}
	alice := newService(t, nil)
	setupPrincipal(t, alice, true)
	blob, err := alice.IssuePersonSelfIdent(ctx, pass, nil, serverBlob)
	if err != nil {
		t.Fatalf("issue person: %v", err)
	}

	later := time.Now().Add(48 * time.Hour)
	v := identity.NewVerifier(identity.VerifierOptions{
		Logger: quiet,
		MaxAge: 24 * time.Hour,
		Now:    func() time.Time { return later },
	})
	if _, err := v.VerifyPersonSelfIdent(ctx, blob, nil); !errors.Is(err, domain.ErrStaleIdent) {
		t.Fatalf("got %v", err)
	}
}

func TestSignerLimiter_NilIsUnlimited(t *testing.T) {
	l := identity.NewSignerLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !l.Allow("x", time.Now()) {
			t.Fatal("nil limiter refused")
		}
	}
}
