// Package store provides file-based persistence for keyrings and identity
// blobs.
//
// It contains concrete implementations of the domain storage interfaces.
// Keyrings hold private keys and are sealed under a passphrase (scrypt and
// ChaCha20-Poly1305) before they touch disk. Identity blobs are public,
// self-authenticating data and are stored as plain JSON records. All files
// are written atomically and all methods are safe for concurrent use.
//
// The package includes:
//   - Root, longterm and messaging keyrings (KeyringFileStore)
//   - Signed server, person and other-person blobs (BlobFileStore)
package store
