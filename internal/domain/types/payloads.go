package types

import "time"

// ServerMeta is informational metadata about a transit server.
type ServerMeta struct {
	DisplayName string `json:"displayName"`
}

// ServerDetails is the caller-supplied part of a server self-ident.
type ServerDetails struct {
	Tag  string
	URL  string
	Meta ServerMeta
}

// ServerSelfIdent is signed directly by the server's root key. Servers have
// no longterm signing key and no validity period.
type ServerSelfIdent struct {
	Tag           string        `json:"tag"`
	URL           string        `json:"url"`
	Meta          ServerMeta    `json:"meta"`
	PublicKey     BoxPublicKey  `json:"publicKey"`
	RootPublicKey SignPublicKey `json:"rootPublicKey"`
}

// RootAuth ties a person's longterm signing key to their root key.
type RootAuth struct {
	RootSignPubKey      SignPublicKey `json:"rootSignPubKey"`
	LongtermSignPubKey  SignPublicKey `json:"longtermSignPubKey"`
	LongtermSignPubAuth Authorization `json:"longtermSignPubAuth"`
}

// MessagingKeys are the purpose-scoped keys others use to talk to a person.
// They are distinct so a person can hand some of the matching secrets to an
// intermediary (say, the envelope key to a mailstore) and keep the rest.
type MessagingKeys struct {
	EnvelopeBoxPubKey  BoxPublicKey  `json:"envelopeBoxPubKey"`
	BodyBoxPubKey      BoxPublicKey  `json:"bodyBoxPubKey"`
	AnnounceSignPubKey SignPublicKey `json:"announceSignPubKey"`
	TellBoxPubKey      BoxPublicKey  `json:"tellBoxPubKey"`
}

// PersonSelfIdent is signed by the person's longterm key.
type PersonSelfIdent struct {
	Poco               Poco          `json:"poco"`
	Root               RootAuth      `json:"root"`
	IssuedAt           int64         `json:"issuedAt"`
	TransitServerIdent SignedBlob    `json:"transitServerIdent"`
	Keys               MessagingKeys `json:"keys"`
}

// IssuedTime returns IssuedAt as a time.
func (p PersonSelfIdent) IssuedTime() time.Time { return FromMillis(p.IssuedAt) }

// OtherPersonIdent is one person's signed snapshot of another person's
// self-ident plus locally assigned contact data.
type OtherPersonIdent struct {
	IssuedAt        int64         `json:"issuedAt"`
	PersonSelfIdent SignedBlob    `json:"personSelfIdent"`
	LocalPoco       Poco          `json:"localPoco"`
	AssertedBy      SignPublicKey `json:"assertedBy"`
}

// IssuedTime returns IssuedAt as a time.
func (p OtherPersonIdent) IssuedTime() time.Time { return FromMillis(p.IssuedAt) }
