// Package repo contains the durable slot persistence for the Ferry Logbook.
// A slot is a named key holding one full JSON-serialized collection; every
// store mutation rewrites its collection's slot wholesale. No business logic
// lives here — only storage access.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// Well-known slot keys. The names match the browser-local storage keys of
// earlier deployments so durable data migrates over unchanged.
const (
	SlotUsers       = "ferry_users"
	SlotLogs        = "ferry_logs"
	SlotNotifyCfg   = "ferry_tg_config"
	SlotDraftPrefix = "ferry_draft:" // one draft slot per user, key = prefix + user ID
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

// SlotRepo defines the slot persistence operations.
// The store depends on this interface, not the concrete Postgres
// implementation, which allows store tests to run against the in-memory
// implementation.
type SlotRepo interface {
	// Get returns the raw JSON stored under key.
	// Returns domain.ErrNotFound when the slot has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes value under key, overwriting any previous value.
	// The write is complete (durable as far as the medium guarantees)
	// before Put returns.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the slot entirely. Deleting an absent slot is a no-op.
	Delete(ctx context.Context, key string) error
}

// pgSlotRepo is the Postgres implementation of SlotRepo.
type pgSlotRepo struct {
	db db
}

// NewSlotRepo constructs a SlotRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSlotRepo(db db) SlotRepo {
	return &pgSlotRepo{db: db}
}

// Get reads the slot value by key.
func (r *pgSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM slots WHERE key = @key`

	var value []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.SlotRepo.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.SlotRepo.Get %q: %w", key, err)
	}
	return value, nil
}

// Put upserts the slot value. Last writer wins; there is no optimistic
// concurrency token, matching the storage contract of the store.
func (r *pgSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO slots (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = now()`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("repo.SlotRepo.Put %q: %w", key, err)
	}
	return nil
}

// Delete removes the slot row, if any.
func (r *pgSlotRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM slots WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.SlotRepo.Delete %q: %w", key, err)
	}
	return nil
}
