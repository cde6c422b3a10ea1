package store

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"pubident/internal/domain"
)

const (
	blobsDir   = "blobs"
	blobSuffix = ".json"
)

// blobRecord is the on-disk form of a stored identity blob.
type blobRecord struct {
	Kind    domain.BlobKind   `json:"kind"`
	SavedAt time.Time         `json:"saved_at"`
	Blob    domain.SignedBlob `json:"blob"`
}

// BlobFileStore keeps signed identity blobs under dir/blobs/<kind>/.
type BlobFileStore struct {
	dir string
	mu  sync.Mutex
}

// Compile-time assertion that BlobFileStore implements domain.BlobStore.
var _ domain.BlobStore = (*BlobFileStore)(nil)

// NewBlobFileStore returns a store rooted at dir.
func NewBlobFileStore(dir string) *BlobFileStore { return &BlobFileStore{dir: dir} }

// SaveBlob stores blob under kind and name, replacing any previous blob.
func (s *BlobFileStore) SaveBlob(kind domain.BlobKind, name string, blob domain.SignedBlob) error {
	path, err := s.path(kind, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return writeJSON(path, blobRecord{Kind: kind, SavedAt: time.Now().UTC(), Blob: blob.Clone()}, 0o644)
}

// LoadBlob returns the blob stored under kind and name; ok is false if
// there is none.
func (s *BlobFileStore) LoadBlob(kind domain.BlobKind, name string) (domain.SignedBlob, bool, error) {
	path, err := s.path(kind, name)
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec blobRecord
	found, err := readJSON(path, &rec)
	if err != nil || !found {
		return nil, false, err
	}
	if rec.Kind != kind {
		return nil, false, fmt.Errorf("blob %s/%s: record holds kind %q", kind, name, rec.Kind)
	}
	return rec.Blob, true, nil
}

// ListBlobs returns the names stored under kind in lexical order.
func (s *BlobFileStore) ListBlobs(kind domain.BlobKind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown blob kind %q", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, blobsDir, kind.String()))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), blobSuffix); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *BlobFileStore) path(kind domain.BlobKind, name string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown blob kind %q", kind)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(s.dir, blobsDir, kind.String(), name+blobSuffix), nil
}
