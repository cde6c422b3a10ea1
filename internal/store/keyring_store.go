package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pubident/internal/domain"
	"pubident/internal/util/memzero"
)

const (
	rootFile      = "root.keyring"
	longtermFile  = "longterm.keyring"
	messagingFile = "messaging.keyring"
)

// KeyringFileStore keeps a principal's keyrings as sealed files in dir.
type KeyringFileStore struct {
	dir string
	mu  sync.Mutex

	// scrypt parameters; tests lower N.
	n, r, p int
}

// Compile-time assertion that KeyringFileStore implements domain.KeyringStore.
var _ domain.KeyringStore = (*KeyringFileStore)(nil)

// NewKeyringFileStore returns a store rooted at dir.
func NewKeyringFileStore(dir string) *KeyringFileStore {
	n, r, p := scryptParamsDefault()
	return &KeyringFileStore{dir: dir, n: n, r: r, p: p}
}

// WithScryptParams overrides the scrypt cost parameters used for new seals.
func (s *KeyringFileStore) WithScryptParams(n, r, p int) *KeyringFileStore {
	s.n, s.r, s.p = n, r, p
	return s
}

func (s *KeyringFileStore) SaveRootKeyring(passphrase string, rec domain.RootKeyRecord) error {
	return s.save(passphrase, rootFile, "root", rec)
}

func (s *KeyringFileStore) LoadRootKeyring(passphrase string) (domain.RootKeyRecord, error) {
	var rec domain.RootKeyRecord
	err := s.load(passphrase, rootFile, "root", &rec)
	return rec, err
}

func (s *KeyringFileStore) SaveLongtermKeyring(passphrase string, rec domain.LongtermKeyRecord) error {
	return s.save(passphrase, longtermFile, "longterm", rec)
}

func (s *KeyringFileStore) LoadLongtermKeyring(passphrase string) (domain.LongtermKeyRecord, error) {
	var rec domain.LongtermKeyRecord
	err := s.load(passphrase, longtermFile, "longterm", &rec)
	return rec, err
}

func (s *KeyringFileStore) SaveMessagingKeyring(passphrase string, rec domain.MessagingKeyRecord) error {
	return s.save(passphrase, messagingFile, "messaging", rec)
}

func (s *KeyringFileStore) LoadMessagingKeyring(passphrase string) (domain.MessagingKeyRecord, error) {
	var rec domain.MessagingKeyRecord
	err := s.load(passphrase, messagingFile, "messaging", &rec)
	return rec, err
}

func (s *KeyringFileStore) save(passphrase, name, kind string, rec any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	b, err := seal(passphrase, kind, raw, s.n, s.r, s.p)
	if err != nil {
		return fmt.Errorf("seal %s keyring: %w", kind, err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, name), b, 0o600)
}

func (s *KeyringFileStore) load(passphrase, name, kind string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%s: %w", kind, domain.ErrKeyringNotFound)
	}
	raw, err := open(passphrase, kind, b)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)
	return json.Unmarshal(raw, out)
}
