package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pubident/internal/crypto"
	"pubident/internal/domain"
	"pubident/internal/keyring"
	"pubident/internal/pubident"
)

// ErrRateLimited is returned when a signer has exceeded its verification budget.
var ErrRateLimited = errors.New("verification rate limit exceeded")

// VerifierOptions configures a Verifier.
type VerifierOptions struct {
	Logger  *slog.Logger
	Metrics *Metrics
	// Limiter throttles successful verifications per signer; nil is
	// unlimited.
	Limiter *SignerLimiter
	// MaxAge rejects person self-idents older than this; zero disables it.
	MaxAge time.Duration
	// Now is the clock used for check times; nil means time.Now.
	Now func() time.Time
}

// Verifier checks identity blobs received from elsewhere.
type Verifier struct {
	log     *slog.Logger
	metrics *Metrics
	limiter *SignerLimiter
	maxAge  time.Duration
	now     func() time.Time
}

// Compile-time assertion that Verifier implements domain.VerifyService.
var _ domain.VerifyService = (*Verifier)(nil)

// NewVerifier returns a Verifier configured by opts.
func NewVerifier(opts VerifierOptions) *Verifier {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Verifier{
		log:     log.With("component", "verify"),
		metrics: opts.Metrics,
		limiter: opts.Limiter,
		maxAge:  opts.MaxAge,
		now:     now,
	}
}

func (v *Verifier) VerifyServerSelfIdent(
	ctx context.Context,
	blob domain.SignedBlob,
) (ident domain.ServerSelfIdent, err error) {
	if err := ctx.Err(); err != nil {
		return domain.ServerSelfIdent{}, err
	}
	var signer domain.SignPublicKey
	if u, perr := pubident.PeekServerSelfIdent(blob); perr == nil {
		signer = u.ForDisplay().RootPublicKey
	}
	defer func() { v.observe(domain.BlobKindServer, signer, err) }()

	if err := v.ready(signer); err != nil {
		return domain.ServerSelfIdent{}, err
	}
	ident, err = pubident.VerifyServerSelfIdent(blob)
	if err != nil {
		return domain.ServerSelfIdent{}, err
	}
	v.charge(ident.RootPublicKey)
	return ident, nil
}

// VerifyPersonSelfIdent checks blob as of the verifier's clock, applying the
// configured max age and, when expectedRoot is non-nil, the root key check.
func (v *Verifier) VerifyPersonSelfIdent(
	ctx context.Context,
	blob domain.SignedBlob,
	expectedRoot *domain.SignPublicKey,
) (ident domain.PersonSelfIdent, err error) {
	if err := ctx.Err(); err != nil {
		return domain.PersonSelfIdent{}, err
	}
	var signer domain.SignPublicKey
	if u, perr := pubident.PeekPersonSelfIdent(blob); perr == nil {
		signer = u.ForDisplay().Root.LongtermSignPubKey
	}
	defer func() { v.observe(domain.BlobKindPerson, signer, err) }()

	if err := v.ready(signer); err != nil {
		return domain.PersonSelfIdent{}, err
	}
	opts := []pubident.VerifyOption{
		pubident.WithCheckTime(v.now()),
		pubident.WithMaxAge(v.maxAge),
	}
	if expectedRoot != nil {
		opts = append(opts, pubident.WithExpectedRootKey(*expectedRoot))
	}
	ident, err = pubident.VerifyPersonSelfIdent(blob, opts...)
	if err != nil {
		return domain.PersonSelfIdent{}, err
	}
	v.charge(ident.Root.LongtermSignPubKey)
	return ident, nil
}

// VerifyOtherPersonIdent verifies the asserter's self-ident as of asOf,
// builds a pubring from it, and checks blob against that pubring. The
// embedded subject self-ident is not verified.
func (v *Verifier) VerifyOtherPersonIdent(
	ctx context.Context,
	blob domain.SignedBlob,
	asserterSelfIdent domain.SignedBlob,
	asOf time.Time,
) (ident domain.OtherPersonIdent, err error) {
	if err := ctx.Err(); err != nil {
		return domain.OtherPersonIdent{}, err
	}
	var signer domain.SignPublicKey
	if u, perr := pubident.PeekOtherPersonIdent(blob); perr == nil {
		signer = u.ForDisplay().AssertedBy
	}
	defer func() { v.observe(domain.BlobKindOtherPerson, signer, err) }()

	if err := v.ready(signer); err != nil {
		return domain.OtherPersonIdent{}, err
	}
	asserter, err := pubident.VerifyPersonSelfIdent(asserterSelfIdent, pubident.WithCheckTime(asOf))
	if err != nil {
		return domain.OtherPersonIdent{}, fmt.Errorf("asserter: %w", err)
	}
	ring, err := keyring.NewPubringFromSelfIdent(asserter)
	if err != nil {
		return domain.OtherPersonIdent{}, fmt.Errorf("asserter: %w", err)
	}
	ident, err = pubident.VerifyOtherPersonIdent(blob, ring, asOf)
	if err != nil {
		return domain.OtherPersonIdent{}, err
	}
	v.charge(ident.AssertedBy)
	return ident, nil
}

// ready refuses work for a signer whose bucket is empty. The signer comes
// from an unverified peek, so nothing is taken from the bucket here.
func (v *Verifier) ready(signer domain.SignPublicKey) error {
	if signer.IsZero() {
		return nil
	}
	if !v.limiter.Ready(signer.String(), v.now()) {
		return ErrRateLimited
	}
	return nil
}

// charge takes a token from a signer whose blob has verified.
func (v *Verifier) charge(signer domain.SignPublicKey) {
	v.limiter.Allow(signer.String(), v.now())
}

func (v *Verifier) observe(kind domain.BlobKind, signer domain.SignPublicKey, err error) {
	v.metrics.observeVerified(kind, err)
	attrs := []any{
		"operation", "verify",
		"kind", kind.String(),
		"result", resultLabel(err),
	}
	if !signer.IsZero() {
		attrs = append(attrs, "signer", crypto.Fingerprint(signer.Slice()))
	}
	if err != nil {
		v.log.Warn("ident rejected", append(attrs, "err", err)...)
		return
	}
	v.log.Debug("ident verified", attrs...)
}
