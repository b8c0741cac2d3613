// Package testkit provides an in-memory registry and a conformance suite
// shared by all registry.Store implementations.
package testkit

import (
	"context"
	"sync"
	"testing"

	"github.com/piprs/piprs/registry"
)

// Store is an in-memory registry.Store for tests.
type Store struct {
	mu    sync.Mutex
	users map[string]registry.User
}

func New() *Store {
	return &Store{users: make(map[string]registry.User)}
}

func (s *Store) Get(ctx context.Context, key string) (registry.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[key]
	if !ok {
		return registry.User{}, registry.ErrNotFound
	}
	return u, nil
}

func (s *Store) Insert(ctx context.Context, u registry.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Key]; ok {
		return registry.ErrDuplicateKey
	}
	s.users[u.Key] = u
	return nil
}

func (s *Store) Close() error { return nil }

// Len reports the number of stored rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// NewStore constructs a fresh, empty Store instance for a test.
// The returned Store MUST be isolated from other tests.
type NewStore func(t *testing.T) registry.Store

// RunStoreConformance exercises the registry.Store contract.
func RunStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("InsertGetRoundTrip", func(t *testing.T) {
		s := newStore(t)
		want := registry.User{Key: "a2V5", Account: "alice", Password: "secret"}

		if err := s.Insert(ctx, want); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		got, err := s.Get(ctx, want.Key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != want {
			t.Fatalf("Get = %+v, want %+v", got, want)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "bm9ib2R5")
		if !registry.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}
	})

	t.Run("DuplicateKeyRejected", func(t *testing.T) {
		s := newStore(t)
		first := registry.User{Key: "ZHVw", Account: "alice", Password: "one"}
		second := registry.User{Key: "ZHVw", Account: "mallory", Password: "two"}

		if err := s.Insert(ctx, first); err != nil {
			t.Fatalf("Insert(first) failed: %v", err)
		}
		if err := s.Insert(ctx, second); !registry.IsDuplicate(err) {
			t.Fatalf("Insert(second): got err=%v want ErrDuplicateKey", err)
		}

		// The original row must survive the rejected insert.
		got, err := s.Get(ctx, first.Key)
		if err != nil {
			t.Fatalf("Get after duplicate: %v", err)
		}
		if got != first {
			t.Fatalf("row mutated by rejected insert: %+v", got)
		}
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		s := newStore(t)
		a := registry.User{Key: "YQ==", Account: "alice", Password: "pa"}
		b := registry.User{Key: "Yg==", Account: "bob", Password: "pb"}
		if err := s.Insert(ctx, a); err != nil {
			t.Fatalf("Insert(a): %v", err)
		}
		if err := s.Insert(ctx, b); err != nil {
			t.Fatalf("Insert(b): %v", err)
		}
		got, err := s.Get(ctx, b.Key)
		if err != nil || got != b {
			t.Fatalf("Get(b) = %+v, %v", got, err)
		}
	})
}
