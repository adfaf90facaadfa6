// Package store holds the single source of truth for the ferry console's
// domain collections. Every mutation updates the in-memory collection and
// re-serializes it wholesale to its durable slot before returning, so the
// durable medium always holds the last completed write of each collection.
//
// The Store is constructor-injected and carries no session state; request
// identity lives in signed tokens, not here.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/naminara/ferry-logbook/internal/domain"
	"github.com/naminara/ferry-logbook/internal/repo"
)

// Store owns the users, logs, and notification-config collections plus the
// per-user draft slots. All methods are safe for concurrent use within one
// process; across processes the slot medium is last-write-wins with no
// coordination.
type Store struct {
	slots repo.SlotRepo
	log   *slog.Logger

	mu        sync.Mutex
	users     []domain.User
	logs      []domain.SailingLog
	notifyCfg domain.NotificationConfig
}

// New loads each collection from its durable slot. A slot that has never
// been written yields the built-in default, which is persisted right away.
// A slot holding unparseable data is logged and replaced in memory by the
// default; the stored bytes are left untouched until the next mutation so
// an operator can still inspect them.
func New(ctx context.Context, slots repo.SlotRepo, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{slots: slots, log: logger}

	if err := loadSlot(ctx, s, repo.SlotUsers, &s.users, SeedUsers); err != nil {
		return nil, err
	}
	if err := loadSlot(ctx, s, repo.SlotLogs, &s.logs, func() []domain.SailingLog {
		return SampleLogs(time.Now())
	}); err != nil {
		return nil, err
	}
	if err := loadSlot(ctx, s, repo.SlotNotifyCfg, &s.notifyCfg, func() domain.NotificationConfig {
		return domain.NotificationConfig{Recipients: []string{}}
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// loadSlot fills dst from the named slot, falling back to defaults() when the
// slot is missing or malformed. Only storage errors are fatal.
func loadSlot[T any](ctx context.Context, s *Store, key string, dst *T, defaults func() T) error {
	raw, err := s.slots.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		*dst = defaults()
		return s.persist(ctx, key, *dst)
	case err != nil:
		return fmt.Errorf("store: load %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("malformed slot data, using defaults", "slot", key, "error", err)
		*dst = defaults()
	}
	return nil
}

// persist writes v as JSON to the named slot. Called with s.mu held (or
// during construction, before the store is shared).
func (s *Store) persist(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", key, err)
	}
	if err := s.slots.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("store: persist %q: %w", key, err)
	}
	return nil
}

// Users returns the user collection in order.
func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// ReplaceUsers swaps the whole user collection and persists it.
// Additions and edits both go through here with a freshly constructed list.
func (s *Store) ReplaceUsers(ctx context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, repo.SlotUsers, users); err != nil {
		return err
	}
	s.users = users
	return nil
}

// Ships returns the fixed fleet catalog. The store never mutates it.
func (s *Store) Ships() []domain.Ship {
	return domain.ShipCatalog()
}

// Logs returns the sailing-log collection in order (newest saves first).
func (s *Store) Logs() []domain.SailingLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SailingLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// ReplaceLogs swaps the whole log collection and persists it.
func (s *Store) ReplaceLogs(ctx context.Context, logs []domain.SailingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, repo.SlotLogs, logs); err != nil {
		return err
	}
	s.logs = logs
	return nil
}

// SaveLog upserts by id: an existing log is replaced in place, keeping its
// position; a new log is prepended to the front of the collection. After a
// successful call exactly one log with that id exists.
//
// A save that would leave two in-progress logs for the same ship is rejected
// with domain.ErrConflict: one vessel cannot be on two voyages at once.
func (s *Store) SaveLog(ctx context.Context, l domain.SailingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.InProgress() {
		for _, other := range s.logs {
			if other.ID != l.ID && other.ShipID == l.ShipID && other.InProgress() {
				return fmt.Errorf("store: ship %s already has voyage %s in progress: %w",
					l.ShipID, other.ID, domain.ErrConflict)
			}
		}
	}

	next := make([]domain.SailingLog, 0, len(s.logs)+1)
	replaced := false
	for _, existing := range s.logs {
		if existing.ID == l.ID {
			next = append(next, l)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append([]domain.SailingLog{l}, next...)
	}

	if err := s.persist(ctx, repo.SlotLogs, next); err != nil {
		return err
	}
	s.logs = next
	return nil
}

// DeleteLog removes a log by id and persists the shortened collection.
// Returns domain.ErrNotFound when no log with that id exists.
func (s *Store) DeleteLog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.SailingLog, 0, len(s.logs))
	found := false
	for _, existing := range s.logs {
		if existing.ID == id {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		return fmt.Errorf("store: delete log %q: %w", id, domain.ErrNotFound)
	}

	if err := s.persist(ctx, repo.SlotLogs, next); err != nil {
		return err
	}
	s.logs = next
	return nil
}

// NotificationConfig returns the singleton broadcast configuration.
func (s *Store) NotificationConfig() domain.NotificationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifyCfg
}

// SetNotificationConfig overwrites the broadcast configuration wholesale.
func (s *Store) SetNotificationConfig(ctx context.Context, cfg domain.NotificationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, repo.SlotNotifyCfg, cfg); err != nil {
		return err
	}
	s.notifyCfg = cfg
	return nil
}

// Draft returns the autosaved log-entry form for userID.
// Returns domain.ErrNotFound when no draft slot exists. Drafts bypass the
// in-memory collections entirely: they are an independent persistence
// channel that only exists to survive an interrupted form session.
func (s *Store) Draft(ctx context.Context, userID string) (domain.SailingLog, error) {
	raw, err := s.slots.Get(ctx, repo.SlotDraftPrefix+userID)
	if err != nil {
		return domain.SailingLog{}, err
	}
	var l domain.SailingLog
	if err := json.Unmarshal(raw, &l); err != nil {
		return domain.SailingLog{}, fmt.Errorf("store: draft for %q: %w", userID, err)
	}
	return l, nil
}

// SaveDraft overwrites the autosave slot for userID. Called on every form
// change, so it must stay cheap: one marshal, one slot write.
func (s *Store) SaveDraft(ctx context.Context, userID string, l domain.SailingLog) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("store: marshal draft for %q: %w", userID, err)
	}
	return s.slots.Put(ctx, repo.SlotDraftPrefix+userID, raw)
}

// ClearDraft removes the autosave slot for userID. Clearing an absent draft
// is a no-op.
func (s *Store) ClearDraft(ctx context.Context, userID string) error {
	return s.slots.Delete(ctx, repo.SlotDraftPrefix+userID)
}
