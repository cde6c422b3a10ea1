package types

import "time"

// KeyClass names the tier of a key within a person's key hierarchy.
type KeyClass string

const (
	// KeyClassRoot is the highest-authority key of a principal.
	KeyClassRoot KeyClass = "ROOT"
	// KeyClassLongterm is a day-to-day key authorized by the root key.
	KeyClassLongterm KeyClass = "LONGTERM"
)

// String returns the string form of the key class.
func (c KeyClass) String() string { return string(c) }

// Purpose names what a delegated or purpose-scoped key may be used for.
type Purpose string

const (
	// PurposeSign authorizes a longterm key to sign on the root's behalf.
	PurposeSign Purpose = "sign"
	// PurposeBox authorizes a longterm key to receive boxed data.
	PurposeBox Purpose = "box"

	// PurposeEnvelopeBox encrypts message envelopes to a person.
	PurposeEnvelopeBox Purpose = "envelopeBox"
	// PurposeBodyBox encrypts message bodies to a person.
	PurposeBodyBox Purpose = "bodyBox"
	// PurposeAnnounceSign signs messages authored by a person.
	PurposeAnnounceSign Purpose = "announceSign"
	// PurposeTellBox encrypts messages authored by a person.
	PurposeTellBox Purpose = "tellBox"
)

// String returns the string form of the purpose.
func (p Purpose) String() string { return string(p) }

// IsSigning reports whether keys for this purpose are signing keys.
func (p Purpose) IsSigning() bool {
	return p == PurposeSign || p == PurposeAnnounceSign
}

// NamespaceMessaging is the keyring namespace holding a person's messaging keys.
const NamespaceMessaging = "messaging"

// MessagingPurposes lists the purpose keys published in a person self-ident.
var MessagingPurposes = []Purpose{
	PurposeEnvelopeBox,
	PurposeBodyBox,
	PurposeAnnounceSign,
	PurposeTellBox,
}

// Fingerprint is a short, stable identifier for a public key.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyFingerprints are short identifiers of a principal's root and
// longterm signing keys.
type KeyFingerprints struct {
	Root     Fingerprint
	Longterm Fingerprint
}

// Millis converts t to the millisecond timestamps used in payloads.
func Millis(t time.Time) int64 { return t.UnixMilli() }

// FromMillis converts a payload timestamp back to a time.
func FromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
