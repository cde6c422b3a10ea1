package keyring

import (
	"crypto/sha256"
	"errors"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"

	"pubident/internal/crypto"
	"pubident/internal/util/memzero"
)

const (
	mnemonicEntropyBits = 256
	rootSeedInfo        = "pubident/root-sign/v1"
)

var (
	// ErrInvalidMnemonic is returned when a recovery phrase fails the BIP-39
	// checksum or word list.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrMnemonicRequired is returned for an empty recovery phrase.
	ErrMnemonicRequired = errors.New("mnemonic is required")
)

// NewMnemonic returns a fresh 24-word BIP-39 recovery phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(entropy)
	return bip39.NewMnemonic(entropy)
}

// NormalizeMnemonic trims and collapses whitespace and checks the phrase.
func NormalizeMnemonic(mnemonic string) (string, error) {
	mnemonic = strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	if mnemonic == "" {
		return "", ErrMnemonicRequired
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", ErrInvalidMnemonic
	}
	return mnemonic, nil
}

// rootSeedFromMnemonic expands the BIP-39 seed into the root signing seed.
func rootSeedFromMnemonic(mnemonic string) (seed [crypto.SeedSize]byte, err error) {
	bipSeed := bip39.NewSeed(mnemonic, "")
	defer memzero.Zero(bipSeed)

	r := hkdf.New(sha256.New, bipSeed, nil, []byte(rootSeedInfo))
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return seed, err
	}
	return seed, nil
}
