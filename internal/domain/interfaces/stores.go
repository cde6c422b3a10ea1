package interfaces

import domaintypes "pubident/internal/domain/types"

// KeyringStore persists a principal's keyrings sealed under a passphrase.
type KeyringStore interface {
	SaveRootKeyring(passphrase string, rec domaintypes.RootKeyRecord) error
	LoadRootKeyring(passphrase string) (domaintypes.RootKeyRecord, error)

	SaveLongtermKeyring(passphrase string, rec domaintypes.LongtermKeyRecord) error
	LoadLongtermKeyring(passphrase string) (domaintypes.LongtermKeyRecord, error)

	SaveMessagingKeyring(passphrase string, rec domaintypes.MessagingKeyRecord) error
	LoadMessagingKeyring(passphrase string) (domaintypes.MessagingKeyRecord, error)
}

// BlobStore keeps signed identity blobs by kind and name. Blobs are public
// material and are stored unencrypted.
type BlobStore interface {
	SaveBlob(kind domaintypes.BlobKind, name string, blob domaintypes.SignedBlob) error
	LoadBlob(kind domaintypes.BlobKind, name string) (domaintypes.SignedBlob, bool, error)
	ListBlobs(kind domaintypes.BlobKind) ([]string, error)
}
