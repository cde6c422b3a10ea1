package app

import "pubident/internal/domain"

// App is the narrow view of the wiring that commands use.
type App struct {
	IDs    domain.IdentityService
	Verify domain.VerifyService
	Blobs  domain.BlobStore
}

func New(ids domain.IdentityService, verify domain.VerifyService, blobs domain.BlobStore) *App {
	return &App{
		IDs:    ids,
		Verify: verify,
		Blobs:  blobs,
	}
}

// FromWire builds an App from a constructed Wire.
func FromWire(w *Wire) *App { return New(w.Identity, w.Verifier, w.Blobs) }
