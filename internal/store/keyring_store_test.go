package store_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pubident/internal/domain"
	"pubident/internal/store"
)

func newKeyringStore(t *testing.T) (*store.KeyringFileStore, string) {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	// Cheap scrypt parameters keep the tests fast.
	return store.NewKeyringFileStore(home).WithScryptParams(1<<10, 8, 1), home
}

func TestKeyring_SaveLoad_OK(t *testing.T) {
	ks, home := newKeyringStore(t)
	var s domain.KeyringStore = ks
	pass := "pass"

	root := domain.RootKeyRecord{SignPriv: domain.SignPrivateKey{1}, SignPub: domain.SignPublicKey{2}}
	lt := domain.LongtermKeyRecord{
		RootPub:       domain.SignPublicKey{2},
		SignPriv:      domain.SignPrivateKey{3},
		SignPub:       domain.SignPublicKey{4},
		BoxPriv:       domain.BoxPrivateKey{5},
		BoxPub:        domain.BoxPublicKey{6},
		Authorization: domain.Authorization("token"),
	}
	msg := domain.MessagingKeyRecord{Keys: []domain.PurposeKeyRecord{{
		Namespace: domain.NamespaceMessaging,
		Purpose:   domain.PurposeTellBox,
		Priv:      []byte{7, 7},
		Pub:       domain.PublicKey{8},
	}}}

	if err := s.SaveRootKeyring(pass, root); err != nil {
		t.Fatalf("save root: %v", err)
	}
	if err := s.SaveLongtermKeyring(pass, lt); err != nil {
		t.Fatalf("save longterm: %v", err)
	}
	if err := s.SaveMessagingKeyring(pass, msg); err != nil {
		t.Fatalf("save messaging: %v", err)
	}

	gotRoot, err := s.LoadRootKeyring(pass)
	if err != nil {
		t.Fatalf("load root: %v", err)
	}
	if gotRoot != root {
		t.Fatalf("root mismatch after load")
	}
	gotLt, err := s.LoadLongtermKeyring(pass)
	if err != nil {
		t.Fatalf("load longterm: %v", err)
	}
	if gotLt.SignPub != lt.SignPub || gotLt.BoxPriv != lt.BoxPriv || string(gotLt.Authorization) != "token" {
		t.Fatalf("longterm mismatch after load")
	}
	gotMsg, err := s.LoadMessagingKeyring(pass)
	if err != nil {
		t.Fatalf("load messaging: %v", err)
	}
	if len(gotMsg.Keys) != 1 || gotMsg.Keys[0].Pub != msg.Keys[0].Pub {
		t.Fatalf("messaging mismatch after load: %+v", gotMsg)
	}

	fi, err := os.Stat(filepath.Join(home, "root.keyring"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("root keyring mode %v", fi.Mode().Perm())
	}
}

func TestKeyring_WrongPassphrase_Fails(t *testing.T) {
	s, _ := newKeyringStore(t)
	rec := domain.RootKeyRecord{SignPub: domain.SignPublicKey{1}}

	if err := s.SaveRootKeyring("correct", rec); err != nil {
		t.Fatalf("save root: %v", err)
	}
	if _, err := s.LoadRootKeyring("wrong"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected wrong passphrase error, got %v", err)
	}
}

func TestKeyring_Missing_NotFound(t *testing.T) {
	s, _ := newKeyringStore(t)
	if _, err := s.LoadLongtermKeyring("pass"); !errors.Is(err, domain.ErrKeyringNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestKeyring_SwappedFile_Rejected(t *testing.T) {
	s, home := newKeyringStore(t)
	if err := s.SaveRootKeyring("pass", domain.RootKeyRecord{SignPub: domain.SignPublicKey{1}}); err != nil {
		t.Fatalf("save root: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, "root.keyring"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "longterm.keyring"), b, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.LoadLongtermKeyring("pass"); err == nil {
		t.Fatal("expected error loading root keyring as longterm")
	}
}

func TestKeyring_Load_ScryptParamsOutOfRange(t *testing.T) {
	ks, home := newKeyringStore(t)
	pass := "pass"
	if err := ks.SaveRootKeyring(pass, domain.RootKeyRecord{SignPub: domain.SignPublicKey{2}}); err != nil {
		t.Fatalf("save root: %v", err)
	}
	path := filepath.Join(home, "root.keyring")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	for name, tamper := range map[string]func(map[string]any){
		"huge N":       func(m map[string]any) { m["scrypt_N"] = 1 << 30 },
		"huge r":       func(m map[string]any) { m["scrypt_r"] = 1 << 20 },
		"huge p":       func(m map[string]any) { m["scrypt_p"] = 1 << 20 },
		"zero N":       func(m map[string]any) { m["scrypt_N"] = 0 },
		"memory (N*r)": func(m map[string]any) { m["scrypt_N"] = 1 << 19 },
	} {
		t.Run(name, func(t *testing.T) {
			var env map[string]any
			if err := json.Unmarshal(b, &env); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			tamper(env)
			out, err := json.Marshal(env)
			if err != nil {
				t.Fatalf("encode envelope: %v", err)
			}
			if err := os.WriteFile(path, out, 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := ks.LoadRootKeyring(pass); !errors.Is(err, store.ErrWrongPassphrase) {
				t.Fatalf("got %v", err)
			}
		})
	}
}
