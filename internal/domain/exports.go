package domain

import (
	"time"

	interfaces "pubident/internal/domain/interfaces"
	types "pubident/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SignPublicKey       = types.SignPublicKey
	BoxPublicKey        = types.BoxPublicKey
	PublicKey           = types.PublicKey
	SignPrivateKey      = types.SignPrivateKey
	BoxPrivateKey       = types.BoxPrivateKey
	SignedBlob          = types.SignedBlob
	BlobKind            = types.BlobKind
	KeyClass            = types.KeyClass
	Purpose             = types.Purpose
	Fingerprint         = types.Fingerprint
	KeyFingerprints     = types.KeyFingerprints
	Poco                = types.Poco
	Authorization       = types.Authorization
	AuthorizationClaims = types.AuthorizationClaims
	ServerMeta          = types.ServerMeta
	ServerDetails       = types.ServerDetails
	ServerSelfIdent     = types.ServerSelfIdent
	RootAuth            = types.RootAuth
	MessagingKeys       = types.MessagingKeys
	PersonSelfIdent     = types.PersonSelfIdent
	OtherPersonIdent    = types.OtherPersonIdent
	RootKeyRecord       = types.RootKeyRecord
	LongtermKeyRecord   = types.LongtermKeyRecord
	PurposeKeyRecord    = types.PurposeKeyRecord
	MessagingKeyRecord  = types.MessagingKeyRecord
)

// Unverified aliases the peek wrapper.
type Unverified[T any] = types.Unverified[T]

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Signer          = interfaces.Signer
	RootKeyring     = interfaces.RootKeyring
	BoxingKeyring   = interfaces.BoxingKeyring
	LongtermKeyring = interfaces.LongtermKeyring
	PurposeKeyring  = interfaces.PurposeKeyring
	Pubring         = interfaces.Pubring
	KeyringStore    = interfaces.KeyringStore
	BlobStore       = interfaces.BlobStore
	IdentityService = interfaces.IdentityService
	VerifyService   = interfaces.VerifyService
)

// Re-exported constants.
const (
	KeyClassRoot     = types.KeyClassRoot
	KeyClassLongterm = types.KeyClassLongterm

	PurposeSign         = types.PurposeSign
	PurposeBox          = types.PurposeBox
	PurposeEnvelopeBox  = types.PurposeEnvelopeBox
	PurposeBodyBox      = types.PurposeBodyBox
	PurposeAnnounceSign = types.PurposeAnnounceSign
	PurposeTellBox      = types.PurposeTellBox

	NamespaceMessaging = types.NamespaceMessaging

	BlobKindServer      = types.BlobKindServer
	BlobKindPerson      = types.BlobKindPerson
	BlobKindOtherPerson = types.BlobKindOtherPerson
)

// Re-exported errors.
var (
	ErrMalformedPayload  = types.ErrMalformedPayload
	ErrInvalidSignature  = types.ErrInvalidSignature
	ErrInvalidDelegation = types.ErrInvalidDelegation
	ErrRootKeyMismatch   = types.ErrRootKeyMismatch
	ErrStaleIdent        = types.ErrStaleIdent
	ErrUnknownSigner     = types.ErrUnknownSigner
	ErrKeyringNotFound   = types.ErrKeyringNotFound
)

// MessagingPurposes lists the purpose keys published in a person self-ident.
var MessagingPurposes = types.MessagingPurposes

// NewUnverified wraps v as untrusted.
func NewUnverified[T any](v T) Unverified[T] { return types.NewUnverified(v) }

// Millis converts t to a payload timestamp.
func Millis(t time.Time) int64 { return types.Millis(t) }

// FromMillis converts a payload timestamp back to a time.
func FromMillis(ms int64) time.Time { return types.FromMillis(ms) }

// ParseSignPublicKey decodes a base58 signing key.
func ParseSignPublicKey(s string) (SignPublicKey, error) { return types.ParseSignPublicKey(s) }
