package identity

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pubident/internal/domain"
)

// Metrics counts issuance and verification outcomes.
type Metrics struct {
	issued   *prometheus.CounterVec
	verified *prometheus.CounterVec
}

// NewMetrics registers the identity counters on reg. A nil reg yields
// counters that are never exported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		issued: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pubident_issued_total",
				Help: "Total number of identity blobs issued, by kind.",
			},
			[]string{"kind"},
		),
		verified: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pubident_verifications_total",
				Help: "Total number of identity blob verifications, by kind and result.",
			},
			[]string{"kind", "result"},
		),
	}
}

// Issued returns the issuance counter; exposed for tests.
func (m *Metrics) Issued() *prometheus.CounterVec { return m.issued }

// Verified returns the verification counter; exposed for tests.
func (m *Metrics) Verified() *prometheus.CounterVec { return m.verified }

func (m *Metrics) observeIssued(kind domain.BlobKind) {
	if m == nil {
		return
	}
	m.issued.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeVerified(kind domain.BlobKind, err error) {
	if m == nil {
		return
	}
	m.verified.WithLabelValues(kind.String(), resultLabel(err)).Inc()
}

// resultLabel maps a verification error to a bounded label value.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrInvalidDelegation):
		return "invalid_delegation"
	case errors.Is(err, domain.ErrRootKeyMismatch):
		return "root_mismatch"
	case errors.Is(err, domain.ErrStaleIdent):
		return "stale"
	case errors.Is(err, domain.ErrUnknownSigner):
		return "unknown_signer"
	default:
		return "error"
	}
}
