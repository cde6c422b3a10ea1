package pubident

import (
	"fmt"
	"time"

	"pubident/internal/crypto"
	"pubident/internal/domain"
)

const kindOtherPerson = "other-person ident"

// IssueOtherPersonIdent snapshots subject, another person's self-ident,
// together with localPoco and signs it with the asserter's longterm key.
// The subject blob is embedded as-is and is not verified here.
func IssueOtherPersonIdent(
	asserter domain.LongtermKeyring,
	subject domain.SignedBlob,
	localPoco domain.Poco,
) (domain.SignedBlob, error) {
	return IssueOtherPersonIdentAt(asserter, subject, localPoco, time.Now())
}

// IssueOtherPersonIdentAt is IssueOtherPersonIdent with an explicit issue time.
func IssueOtherPersonIdentAt(
	asserter domain.LongtermKeyring,
	subject domain.SignedBlob,
	localPoco domain.Poco,
	issuedAt time.Time,
) (domain.SignedBlob, error) {
	ident := domain.OtherPersonIdent{
		IssuedAt:        domain.Millis(issuedAt),
		PersonSelfIdent: subject.Clone(),
		LocalPoco:       localPoco.Clone(),
		AssertedBy:      asserter.SigningPublicKey(),
	}
	return encodeAndSign(asserter, kindOtherPerson, ident)
}

// VerifyOtherPersonIdent checks that blob was signed by the longterm key it
// names in assertedBy, that the key is known to pubring and authorized at
// asOf, and that issuedAt falls inside that key's validity.
//
// Only the outer signature is checked. The embedded person self-ident is
// returned unverified; call VerifySubject on the result to check it.
func VerifyOtherPersonIdent(
	blob domain.SignedBlob,
	pubring domain.Pubring,
	asOf time.Time,
) (domain.OtherPersonIdent, error) {
	payload, err := pubring.AssertGetSignedSelfNamingPayload(
		blob, asOf,
		"assertedBy", "issuedAt",
		domain.KeyClassLongterm, domain.KeyClassLongterm,
	)
	if err != nil {
		return domain.OtherPersonIdent{}, fmt.Errorf("%s: %w", kindOtherPerson, err)
	}
	var ident domain.OtherPersonIdent
	if err := decodePayload(payload, kindOtherPerson, &ident); err != nil {
		return domain.OtherPersonIdent{}, err
	}
	// The decoded assertedBy must be the key that signed.
	if _, err := crypto.VerifySignature(blob, ident.AssertedBy); err != nil {
		return domain.OtherPersonIdent{}, fmt.Errorf("%s: assertedBy: %w", kindOtherPerson, err)
	}
	return ident, nil
}

// PeekOtherPersonIdent returns the payload of an other-person ident without
// any check.
func PeekOtherPersonIdent(blob domain.SignedBlob) (domain.Unverified[domain.OtherPersonIdent], error) {
	var ident domain.OtherPersonIdent
	if err := peekInto(blob, kindOtherPerson, &ident); err != nil {
		return domain.Unverified[domain.OtherPersonIdent]{}, err
	}
	return domain.NewUnverified(ident), nil
}

// VerifySubject runs VerifyPersonSelfIdent on the self-ident embedded in
// an other-person ident.
func VerifySubject(ident domain.OtherPersonIdent, opts ...VerifyOption) (domain.PersonSelfIdent, error) {
	return VerifyPersonSelfIdent(ident.PersonSelfIdent, opts...)
}
