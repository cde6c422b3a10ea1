package types

// RootKeyRecord is the persisted form of a root keyring.
type RootKeyRecord struct {
	SignPriv SignPrivateKey `json:"sign_priv"`
	SignPub  SignPublicKey  `json:"sign_pub"`
}

// LongtermKeyRecord is the persisted form of a longterm keyring.
type LongtermKeyRecord struct {
	RootPub       SignPublicKey  `json:"root_pub"`
	SignPriv      SignPrivateKey `json:"sign_priv"`
	SignPub       SignPublicKey  `json:"sign_pub"`
	BoxPriv       BoxPrivateKey  `json:"box_priv"`
	BoxPub        BoxPublicKey   `json:"box_pub"`
	Authorization Authorization  `json:"authorization"`
}

// PurposeKeyRecord is one purpose-scoped key pair. Priv holds either a
// SignPrivateKey or a BoxPrivateKey depending on the purpose.
type PurposeKeyRecord struct {
	Namespace string    `json:"namespace"`
	Purpose   Purpose   `json:"purpose"`
	Priv      []byte    `json:"priv"`
	Pub       PublicKey `json:"pub"`
}

// MessagingKeyRecord is the persisted form of a purpose-scoped keyring.
type MessagingKeyRecord struct {
	Keys []PurposeKeyRecord `json:"keys"`
}
