package store_test

import (
	"bytes"
	"reflect"
	"testing"

	"pubident/internal/domain"
	"pubident/internal/store"
)

func TestBlob_SaveLoadList(t *testing.T) {
	var s domain.BlobStore = store.NewBlobFileStore(t.TempDir())
	blob := domain.SignedBlob{1, 2, 3}

	if err := s.SaveBlob(domain.BlobKindPerson, "bob", blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveBlob(domain.BlobKindPerson, "alice", domain.SignedBlob{9}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.LoadBlob(domain.BlobKindPerson, "bob")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("blob mismatch: %v", got)
	}

	names, err := s.ListBlobs(domain.BlobKindPerson)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"alice", "bob"}) {
		t.Fatalf("names: %v", names)
	}

	if _, ok, err := s.LoadBlob(domain.BlobKindServer, "bob"); ok || err != nil {
		t.Fatalf("other kind: ok=%v err=%v", ok, err)
	}
	if names, err := s.ListBlobs(domain.BlobKindServer); err != nil || len(names) != 0 {
		t.Fatalf("empty list: %v %v", names, err)
	}
}

func TestBlob_RejectsBadNames(t *testing.T) {
	s := store.NewBlobFileStore(t.TempDir())
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		if err := s.SaveBlob(domain.BlobKindPerson, name, domain.SignedBlob{1}); err == nil {
			t.Fatalf("name %q accepted", name)
		}
	}
	if err := s.SaveBlob(domain.BlobKind("bogus"), "x", domain.SignedBlob{1}); err == nil {
		t.Fatal("bogus kind accepted")
	}
}
