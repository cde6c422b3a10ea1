// Package crypto holds the signing primitives identity payloads are built on.
//
// Contents
//
//   - NaCl signed blobs: Sign, VerifySignature and the no-crypto PeekPayload
//   - Key generation for signing and boxing key pairs (GenerateSignKey,
//     SignKeyFromSeed, GenerateBoxKey)
//   - Root-to-longterm delegation tokens (IssueAuthorization,
//     AssertLongtermKeyIsAuthorized)
//   - Deterministic payload encoding (CanonicalJSON)
//   - Short public-key fingerprints for display and logging (Fingerprint)
//
// # Notes
//
// Keys are fixed-size array types from internal/domain. Private key material
// handed to these functions is never retained; callers wipe it with
// memzero.Zero when done.
package crypto
