package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"pubident/internal/crypto"
	"pubident/internal/domain"
	"pubident/internal/keyring"
	"pubident/internal/pubident"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// DefaultAuthorizationValidity is how long a new longterm key is
	// authorized for when the caller does not say.
	DefaultAuthorizationValidity = 365 * 24 * time.Hour

	// selfBlobName is the blob store name of the principal's own idents.
	selfBlobName = "self"
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Options configures a Service.
type Options struct {
	Logger                *slog.Logger
	Metrics               *Metrics
	AuthorizationValidity time.Duration
}

// Service manages the local principal's keyrings and issues identity blobs.
//
// The keyrings are:
//   - Root: the principal's highest-authority signing key, backed up as a
//     BIP-39 mnemonic.
//   - Longterm: a signing key authorized by the root key, plus a boxing key.
//   - Messaging: purpose-scoped keys published in person self-idents.
type Service struct {
	keys     domain.KeyringStore
	blobs    domain.BlobStore
	log      *slog.Logger
	metrics  *Metrics
	validity time.Duration
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)

// New returns an identity service backed by the given stores.
func New(keys domain.KeyringStore, blobs domain.BlobStore, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	validity := opts.AuthorizationValidity
	if validity <= 0 {
		validity = DefaultAuthorizationValidity
	}
	return &Service{
		keys:     keys,
		blobs:    blobs,
		log:      log.With("component", "identity"),
		metrics:  opts.Metrics,
		validity: validity,
	}
}

// GenerateRoot creates a root keyring, saves it encrypted with the
// passphrase, and returns its recovery mnemonic and fingerprint.
func (s *Service) GenerateRoot(passphrase string) (string, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return "", "", ErrWeakPassphrase
	}
	root, mnemonic, err := keyring.GenerateRoot()
	if err != nil {
		return "", "", err
	}
	if err := s.keys.SaveRootKeyring(passphrase, root.Record()); err != nil {
		return "", "", err
	}
	fp := crypto.Fingerprint(root.RootPublicKey().Slice())
	s.log.Info("root keyring created", "operation", "keygen_root", "signer", fp)
	return mnemonic, fp, nil
}

// RestoreRoot rebuilds the root keyring from its mnemonic and saves it.
func (s *Service) RestoreRoot(passphrase, mnemonic string) (domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}
	root, err := keyring.NewRootFromMnemonic(mnemonic)
	if err != nil {
		return "", err
	}
	if err := s.keys.SaveRootKeyring(passphrase, root.Record()); err != nil {
		return "", err
	}
	fp := crypto.Fingerprint(root.RootPublicKey().Slice())
	s.log.Info("root keyring restored", "operation", "keygen_root", "signer", fp)
	return fp, nil
}

// GenerateLongterm creates a longterm keyring authorized by the saved root
// key for validFor (the service default when zero) and saves it.
func (s *Service) GenerateLongterm(passphrase string, validFor time.Duration) (domain.Fingerprint, error) {
	if validFor <= 0 {
		validFor = s.validity
	}
	root, err := s.loadRoot(passphrase)
	if err != nil {
		return "", err
	}
	lt, err := root.IssueLongterm(domain.PurposeSign, validFor)
	if err != nil {
		return "", err
	}
	if err := s.keys.SaveLongtermKeyring(passphrase, lt.Record()); err != nil {
		return "", err
	}
	fp := crypto.Fingerprint(lt.SigningPublicKey().Slice())
	s.log.Info("longterm keyring created",
		"operation", "keygen_longterm",
		"signer", fp,
		"valid_for", validFor.String(),
	)
	return fp, nil
}

// GenerateMessaging creates a messaging keyring and saves it.
func (s *Service) GenerateMessaging(passphrase string) error {
	m, err := keyring.GenerateMessaging()
	if err != nil {
		return err
	}
	if err := s.keys.SaveMessagingKeyring(passphrase, m.Record()); err != nil {
		return err
	}
	s.log.Info("messaging keyring created", "operation", "keygen_messaging")
	return nil
}

// Fingerprints returns the fingerprints of the saved root and longterm keys.
// A keyring that was never created yields an empty fingerprint.
func (s *Service) Fingerprints(passphrase string) (domain.KeyFingerprints, error) {
	var out domain.KeyFingerprints
	if rec, err := s.keys.LoadRootKeyring(passphrase); err == nil {
		out.Root = crypto.Fingerprint(rec.SignPub.Slice())
	} else if !errors.Is(err, domain.ErrKeyringNotFound) {
		return out, err
	}
	if rec, err := s.keys.LoadLongtermKeyring(passphrase); err == nil {
		out.Longterm = crypto.Fingerprint(rec.SignPub.Slice())
	} else if !errors.Is(err, domain.ErrKeyringNotFound) {
		return out, err
	}
	return out, nil
}

// IssueServerSelfIdent signs a server self-ident with the saved root key,
// publishing the saved longterm boxing key, and stores it.
func (s *Service) IssueServerSelfIdent(
	ctx context.Context,
	passphrase string,
	details domain.ServerDetails,
) (domain.SignedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := s.loadRoot(passphrase)
	if err != nil {
		return nil, err
	}
	lt, err := s.loadLongterm(passphrase)
	if err != nil {
		return nil, err
	}
	if lt.RootPublicKey() != root.RootPublicKey() {
		return nil, fmt.Errorf("longterm keyring belongs to another root key")
	}
	blob, err := pubident.IssueServerSelfIdent(root, lt, details)
	if err != nil {
		return nil, err
	}
	return blob, s.store(domain.BlobKindServer, selfBlobName, blob, root.RootPublicKey())
}

// IssuePersonSelfIdent verifies serverIdent, then signs a person self-ident
// embedding it with the saved longterm key, and stores it.
func (s *Service) IssuePersonSelfIdent(
	ctx context.Context,
	passphrase string,
	poco domain.Poco,
	serverIdent domain.SignedBlob,
) (domain.SignedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := pubident.VerifyServerSelfIdent(serverIdent); err != nil {
		return nil, fmt.Errorf("transit server ident: %w", err)
	}
	lt, err := s.loadLongterm(passphrase)
	if err != nil {
		return nil, err
	}
	rec, err := s.keys.LoadMessagingKeyring(passphrase)
	if err != nil {
		return nil, err
	}
	msg, err := keyring.NewMessaging(rec)
	if err != nil {
		return nil, err
	}
	blob, err := pubident.IssuePersonSelfIdent(lt, msg, poco, serverIdent)
	if err != nil {
		return nil, err
	}
	return blob, s.store(domain.BlobKindPerson, selfBlobName, blob, lt.SigningPublicKey())
}

// IssueOtherPersonIdent signs an other-person ident over subject with the
// saved longterm key and stores it under the subject's root fingerprint.
func (s *Service) IssueOtherPersonIdent(
	ctx context.Context,
	passphrase string,
	subject domain.SignedBlob,
	localPoco domain.Poco,
) (domain.SignedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	peeked, err := pubident.PeekPersonSelfIdent(subject)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	lt, err := s.loadLongterm(passphrase)
	if err != nil {
		return nil, err
	}
	blob, err := pubident.IssueOtherPersonIdent(lt, subject, localPoco)
	if err != nil {
		return nil, err
	}
	// The peeked root key only names the file.
	name := crypto.Fingerprint(peeked.ForDisplay().Root.RootSignPubKey.Slice()).String()
	return blob, s.store(domain.BlobKindOtherPerson, name, blob, lt.SigningPublicKey())
}

func (s *Service) store(kind domain.BlobKind, name string, blob domain.SignedBlob, signer domain.SignPublicKey) error {
	if err := s.blobs.SaveBlob(kind, name, blob); err != nil {
		return fmt.Errorf("store %s blob: %w", kind, err)
	}
	s.metrics.observeIssued(kind)
	s.log.Info("ident issued",
		"operation", "issue",
		"kind", kind.String(),
		"name", name,
		"signer", crypto.Fingerprint(signer.Slice()),
	)
	return nil
}

func (s *Service) loadRoot(passphrase string) (*keyring.Root, error) {
	rec, err := s.keys.LoadRootKeyring(passphrase)
	if err != nil {
		return nil, err
	}
	return keyring.NewRoot(rec)
}

func (s *Service) loadLongterm(passphrase string) (*keyring.Longterm, error) {
	rec, err := s.keys.LoadLongtermKeyring(passphrase)
	if err != nil {
		return nil, err
	}
	return keyring.NewLongterm(rec)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
