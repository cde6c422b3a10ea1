// Package identity manages the local principal's keyrings and issues and
// verifies identity blobs on top of internal/pubident.
//
// Service enforces the passphrase policy, creates and persists keyrings via
// a domain.KeyringStore, and stores issued blobs via a domain.BlobStore.
// Verifier checks blobs received from elsewhere, throttled per signer.
// Both log through slog and count outcomes in Prometheus.
package identity
