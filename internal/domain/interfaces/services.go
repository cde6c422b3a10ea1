package interfaces

import (
	"context"
	"time"

	domaintypes "pubident/internal/domain/types"
)

// IdentityService manages the local principal's keyrings and mints
// identity blobs from them.
type IdentityService interface {
	GenerateRoot(passphrase string) (mnemonic string, fp domaintypes.Fingerprint, err error)
	RestoreRoot(passphrase, mnemonic string) (domaintypes.Fingerprint, error)
	GenerateLongterm(passphrase string, validFor time.Duration) (domaintypes.Fingerprint, error)
	GenerateMessaging(passphrase string) error
	Fingerprints(passphrase string) (domaintypes.KeyFingerprints, error)

	IssueServerSelfIdent(
		ctx context.Context,
		passphrase string,
		details domaintypes.ServerDetails,
	) (domaintypes.SignedBlob, error)
	IssuePersonSelfIdent(
		ctx context.Context,
		passphrase string,
		poco domaintypes.Poco,
		serverIdent domaintypes.SignedBlob,
	) (domaintypes.SignedBlob, error)
	IssueOtherPersonIdent(
		ctx context.Context,
		passphrase string,
		subject domaintypes.SignedBlob,
		localPoco domaintypes.Poco,
	) (domaintypes.SignedBlob, error)
}

// VerifyService checks identity blobs received from elsewhere.
type VerifyService interface {
	VerifyServerSelfIdent(
		ctx context.Context,
		blob domaintypes.SignedBlob,
	) (domaintypes.ServerSelfIdent, error)
	VerifyPersonSelfIdent(
		ctx context.Context,
		blob domaintypes.SignedBlob,
		expectedRoot *domaintypes.SignPublicKey,
	) (domaintypes.PersonSelfIdent, error)
	VerifyOtherPersonIdent(
		ctx context.Context,
		blob domaintypes.SignedBlob,
		asserterSelfIdent domaintypes.SignedBlob,
		asOf time.Time,
	) (domaintypes.OtherPersonIdent, error)
}
