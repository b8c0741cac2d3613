// Package registry defines the user registry: the mapping from a sender's
// verifying key to the ledger credentials payments are received on.
package registry

import (
	"context"
	"errors"
)

// User is one registry row.
//
// Key is the sender's base64-encoded verifying key and is the unique primary
// key of the registry. Rows are inserted once at registration and are never
// mutated or deleted by the gateway.
type User struct {
	Key      string
	Account  string
	Password string
}

var (
	ErrNotFound     = errors.New("registry: no user with given key")
	ErrDuplicateKey = errors.New("registry: key already registered")
)

// Store is the registry contract.
//
// Contract:
// - Get MUST return ErrNotFound when the key is absent.
// - Insert MUST return ErrDuplicateKey when the key already exists, and MUST
//   NOT modify the existing row.
// - Stored rows are immutable.
type Store interface {
	Get(ctx context.Context, key string) (User, error)
	Insert(ctx context.Context, u User) error
	Close() error
}

func IsNotFound(err error) bool  { return errors.Is(err, ErrNotFound) }
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicateKey) }
