package types

// SignedBlob is a NaCl signed message: a 64-byte detached-style signature
// followed by the canonical payload bytes. It is treated as immutable; code
// that embeds or retains a blob takes a copy.
type SignedBlob []byte

// Clone returns an independent copy of the blob.
func (b SignedBlob) Clone() SignedBlob {
	if b == nil {
		return nil
	}
	return append(SignedBlob(nil), b...)
}

// Len returns the size of the blob in bytes.
func (b SignedBlob) Len() int { return len(b) }

// BlobKind names which payload shape a stored blob carries.
type BlobKind string

const (
	// BlobKindServer is a server self-ident.
	BlobKindServer BlobKind = "server"
	// BlobKindPerson is a person self-ident.
	BlobKindPerson BlobKind = "person"
	// BlobKindOtherPerson is an other-person-ident.
	BlobKindOtherPerson BlobKind = "other"
)

// String returns the string form of the kind.
func (k BlobKind) String() string { return string(k) }

// Valid reports whether k is one of the known kinds.
func (k BlobKind) Valid() bool {
	switch k {
	case BlobKindServer, BlobKindPerson, BlobKindOtherPerson:
		return true
	}
	return false
}
