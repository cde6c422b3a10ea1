// Package keyring implements the keyrings identity payloads are signed with
// and the pubring they are checked against.
//
// A principal owns a Root keyring, whose key stays offline as much as
// possible, and a Longterm keyring whose signing key the root has
// authorized for a bounded window. Persons additionally hold a Messaging
// keyring of purpose-scoped keys. A Pubring is the public view of one
// person: their root key plus the longterm keys it has authorized.
//
// Keyrings are immutable after construction and safe for concurrent use.
package keyring
