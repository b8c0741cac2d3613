// Package sqlite provides the SQLite-backed user registry.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/piprs/piprs/registry"
)

// Store implements registry.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the registry database at path.
// The special path ":memory:" keeps the registry in process memory.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: store path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// Each pooled connection to :memory: would see its own empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS users (
			key      TEXT PRIMARY KEY,
			account  TEXT NOT NULL,
			password TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (registry.User, error) {
	var u registry.User
	row := s.db.QueryRowContext(ctx,
		`SELECT key, account, password FROM users WHERE key = ?`, key)
	if err := row.Scan(&u.Key, &u.Account, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registry.User{}, registry.ErrNotFound
		}
		return registry.User{}, err
	}
	return u, nil
}

func (s *Store) Insert(ctx context.Context, u registry.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (key, account, password) VALUES (?, ?, ?)`,
		u.Key, u.Account, u.Password)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return registry.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
