// Package repo contains all database access logic for the Excursions API.
// Each aggregate has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles one instance of every repository, all bound to the same
// connection or transaction. Services receive a Repos for their steady-state
// work and a TxManager for mutations that must span several tables.
type Repos struct {
	Users            UserRepo
	Sessions         SessionRepo
	Trips            TripRepo
	Excursions       ExcursionRepo
	Friendships      FriendshipRepo
	FriendRequests   FriendRequestRepo
	ExcursionInvites ExcursionInviteRepo
}

// NewRepos constructs every repository over the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRepos(db db) Repos {
	return Repos{
		Users:            NewUserRepo(db),
		Sessions:         NewSessionRepo(db),
		Trips:            NewTripRepo(db),
		Excursions:       NewExcursionRepo(db),
		Friendships:      NewFriendshipRepo(db),
		FriendRequests:   NewFriendRequestRepo(db),
		ExcursionInvites: NewExcursionInviteRepo(db),
	}
}

// TxManager runs a function with a Repos bound to a single database
// transaction. If fn returns an error the transaction is rolled back,
// otherwise it is committed. Cross-entity mutations (invite resolution,
// cascading deletes) go through here so they apply fully or not at all.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

// pgTxManager is the pgxpool-backed TxManager.
type pgTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager constructs a TxManager over the given pool.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgTxManager{pool: pool}
}

func (m *pgTxManager) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxManager: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxManager: commit: %w", err)
	}
	return nil
}
