// Package pubident issues and verifies self-asserted identities.
//
// Three blob kinds exist:
//
//   - Server self-idents, signed directly by a transit server's root key.
//   - Person self-idents, signed by a person's longterm key and carrying the
//     root-signed authorization for that key.
//   - Other-person idents, one person's signed snapshot of another person's
//     self-ident plus local contact data.
//
// Every Verify function checks that the key named inside the payload is the
// key that signed it. Every Peek function skips all checks and returns an
// Unverified value, which must be unwrapped explicitly.
//
// All functions are pure and safe for concurrent use.
package pubident
