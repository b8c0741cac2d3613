package deadletter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ipfs/go-cid"
)

func runArchiveConformance(t *testing.T, newArchive func(t *testing.T) Archive) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		a := newArchive(t)
		want := []byte{0x02, 0x01, 0x02, 0x03}

		id, err := a.Put(want)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		wantID, err := CID(want)
		if err != nil {
			t.Fatalf("CID failed: %v", err)
		}
		if id != wantID {
			t.Fatalf("Put CID mismatch: got %s want %s", id, wantID)
		}

		got, err := a.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		a := newArchive(t)
		b := []byte("same envelope")

		id1, err := a.Put(b)
		if err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		id2, err := a.Put(b)
		if err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("Put not idempotent: %s vs %s", id1, id2)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		a := newArchive(t)
		b := []byte("missing envelope")
		id, err := CID(b)
		if err != nil {
			t.Fatalf("CID failed: %v", err)
		}

		if a.Has(id) {
			t.Fatalf("Has returned true for missing CID")
		}
		if _, err := a.Get(id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if _, err := a.Put(b); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !a.Has(id) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("RejectUndefCID", func(t *testing.T) {
		a := newArchive(t)
		var undef cid.Cid
		if a.Has(undef) {
			t.Fatalf("Has should be false for undefined CID")
		}
		if _, err := a.Get(undef); err == nil {
			t.Fatalf("Get should fail for undefined CID")
		}
	})
}

func TestMemoryArchive(t *testing.T) {
	runArchiveConformance(t, func(t *testing.T) Archive { return NewMemory() })
}

func TestFSArchive(t *testing.T) {
	runArchiveConformance(t, func(t *testing.T) Archive {
		a, err := NewFS(t.TempDir())
		if err != nil {
			t.Fatalf("NewFS: %v", err)
		}
		return a
	})
}

func TestFSArchive_RequiresRoot(t *testing.T) {
	if _, err := NewFS(""); err == nil {
		t.Fatalf("NewFS(\"\") should fail")
	}
}
