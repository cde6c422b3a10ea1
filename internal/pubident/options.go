package pubident

import (
	"time"

	"pubident/internal/domain"
)

// VerifyOption adjusts how VerifyPersonSelfIdent checks a blob.
type VerifyOption func(*verifyConfig)

type verifyConfig struct {
	expectedRoot *domain.SignPublicKey
	checkTime    time.Time
	maxAge       time.Duration
}

func newVerifyConfig(opts []VerifyOption) verifyConfig {
	var cfg verifyConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.checkTime.IsZero() {
		cfg.checkTime = time.Now()
	}
	return cfg
}

// WithExpectedRootKey requires the self-ident to name root as its root key.
func WithExpectedRootKey(root domain.SignPublicKey) VerifyOption {
	return func(c *verifyConfig) { c.expectedRoot = &root }
}

// WithCheckTime evaluates the longterm key's authorization at t instead of
// the current time.
func WithCheckTime(t time.Time) VerifyOption {
	return func(c *verifyConfig) { c.checkTime = t }
}

// WithMaxAge rejects self-idents issued more than d before the check time.
// A zero or negative d disables the check.
func WithMaxAge(d time.Duration) VerifyOption {
	return func(c *verifyConfig) { c.maxAge = d }
}
