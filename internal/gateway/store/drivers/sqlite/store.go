package sqlite

import (
	"context"
	"database/sql"

	"github.com/unimarket/gateway/internal/gateway/store"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed implementation of store.Store.
type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the database at the given DSN. The caller is expected to run
// ApplyMigrations before use.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GuestCarts() store.GuestCarts { return &guestCartsRepo{db: s.db} }
