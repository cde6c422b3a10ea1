package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"pubident/internal/domain"
	"pubident/internal/services/identity"
	"pubident/internal/store"
)

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Keys     domain.KeyringStore
	Blobs    domain.BlobStore
	Identity *identity.Service
	Verifier *identity.Verifier
	Metrics  *identity.Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger

	metricsOut string
}

// NewWire constructs the dependency graph from cfg. A nil log means
// slog.Default().
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	if log == nil {
		log = slog.Default()
	}

	// File-based stores
	keyStore := store.NewKeyringFileStore(cfg.Home)
	blobStore := store.NewBlobFileStore(cfg.Home)

	reg := prometheus.NewRegistry()
	metrics := identity.NewMetrics(reg)

	// High-level services
	idSvc := identity.New(keyStore, blobStore, identity.Options{
		Logger:                log,
		Metrics:               metrics,
		AuthorizationValidity: cfg.AuthorizationValidity,
	})
	verifier := identity.NewVerifier(identity.VerifierOptions{
		Logger:  log,
		Metrics: metrics,
		Limiter: identity.NewSignerLimiter(cfg.VerifyRateLimit.PerSecond, cfg.VerifyRateLimit.Burst),
		MaxAge:  cfg.MaxIdentAge,
	})

	return &Wire{
		Keys:     keyStore,
		Blobs:    blobStore,
		Identity: idSvc,
		Verifier: verifier,
		Metrics:  metrics,
		Registry: reg,
		Logger:   log,

		metricsOut: cfg.MetricsOut,
	}, nil
}

// WriteMetrics writes the registry in the Prometheus text format to the
// configured metrics file, for a node_exporter textfile collector to pick
// up. It is a no-op when no file is configured.
func (w *Wire) WriteMetrics() error {
	if w.metricsOut == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(w.metricsOut, w.Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
