// Package service contains the business logic for the Ferry Logbook API.
// Services validate inputs, enforce business rules, and orchestrate store
// calls. No storage access lives here — services depend on narrow store
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// LogStore defines the store operations the log service depends on.
// Defining the interface here (in the consumer package) lets service tests
// inject a mock without touching the real store or its persistence.
type LogStore interface {
	Logs() []domain.SailingLog
	Users() []domain.User
	SaveLog(ctx context.Context, l domain.SailingLog) error
	DeleteLog(ctx context.Context, id string) error
	Draft(ctx context.Context, userID string) (domain.SailingLog, error)
	SaveDraft(ctx context.Context, userID string, l domain.SailingLog) error
	ClearDraft(ctx context.Context, userID string) error
}

// LogFilter narrows a history listing. Zero values mean "no constraint".
type LogFilter struct {
	// Search matches case-insensitively against ship and captain names.
	Search string
	// ShipID restricts to one vessel.
	ShipID string
	// Date restricts to one "2006-01-02" day.
	Date string
}

// LogService implements business logic for sailing-log operations.
type LogService struct {
	store LogStore
	now   func() time.Time
}

// NewLogService constructs a LogService backed by the provided store.
func NewLogService(store LogStore) *LogService {
	return &LogService{store: store, now: time.Now}
}

// Save upserts a sailing log on behalf of userID.
//
// Draft saves (IsDraft true) are always accepted regardless of missing
// fields. Final saves must be complete — every required field present and
// passenger count positive — or the save fails with ErrValidation.
// A final save also clears the caller's autosave slot, ending the form
// session; a draft save leaves it in place.
//
// Missing id and creation timestamp are filled in server-side.
func (s *LogService) Save(ctx context.Context, userID string, l domain.SailingLog) (domain.SailingLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt == "" {
		l.CreatedAt = s.now().UTC().Format(time.RFC3339)
	}

	if !l.IsDraft && !l.Complete() {
		return domain.SailingLog{}, fmt.Errorf("service.LogService.Save: %w: all required fields must be filled for a final save", domain.ErrValidation)
	}
	if l.ShipID != "" {
		if _, ok := domain.ShipByID(l.ShipID); !ok {
			return domain.SailingLog{}, fmt.Errorf("service.LogService.Save: %w: unknown ship %q", domain.ErrValidation, l.ShipID)
		}
	}
	if l.PassengerCount < 0 {
		return domain.SailingLog{}, fmt.Errorf("service.LogService.Save: %w: passenger count must not be negative", domain.ErrValidation)
	}

	if err := s.store.SaveLog(ctx, l); err != nil {
		return domain.SailingLog{}, fmt.Errorf("service.LogService.Save: %w", err)
	}

	if !l.IsDraft {
		if err := s.store.ClearDraft(ctx, userID); err != nil {
			return domain.SailingLog{}, fmt.Errorf("service.LogService.Save: clear draft: %w", err)
		}
	}
	return l, nil
}

// List returns logs matching filter, newest date first, paged.
// The returned total counts all matches before paging.
func (s *LogService) List(ctx context.Context, filter LogFilter, page domain.PaginationParams) ([]domain.SailingLog, int, error) {
	_ = ctx // listing is served from memory; kept for interface symmetry

	users := s.store.Users()
	userName := make(map[string]string, len(users))
	for _, u := range users {
		userName[u.ID] = u.Name
	}

	search := strings.ToLower(filter.Search)
	var matched []domain.SailingLog
	for _, l := range s.store.Logs() {
		if filter.ShipID != "" && l.ShipID != filter.ShipID {
			continue
		}
		if filter.Date != "" && l.Date != filter.Date {
			continue
		}
		if search != "" {
			shipName := ""
			if ship, ok := domain.ShipByID(l.ShipID); ok {
				shipName = ship.Name
			}
			captain := userName[l.CaptainID]
			if !strings.Contains(strings.ToLower(shipName), search) &&
				!strings.Contains(strings.ToLower(captain), search) {
				continue
			}
		}
		matched = append(matched, l)
	}

	// Stable sort keeps the collection's save order within one day.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date > matched[j].Date
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Delete removes a log by id.
// Returns domain.ErrNotFound when no log with that id exists.
func (s *LogService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteLog(ctx, id); err != nil {
		return fmt.Errorf("service.LogService.Delete: %w", err)
	}
	return nil
}

// Draft returns userID's autosaved form state.
// Returns domain.ErrNotFound when no draft exists.
func (s *LogService) Draft(ctx context.Context, userID string) (domain.SailingLog, error) {
	l, err := s.store.Draft(ctx, userID)
	if err != nil {
		return domain.SailingLog{}, fmt.Errorf("service.LogService.Draft: %w", err)
	}
	return l, nil
}

// SaveDraft overwrites userID's autosave slot. No validation: the whole
// point of the slot is to preserve half-finished input.
func (s *LogService) SaveDraft(ctx context.Context, userID string, l domain.SailingLog) error {
	if err := s.store.SaveDraft(ctx, userID, l); err != nil {
		return fmt.Errorf("service.LogService.SaveDraft: %w", err)
	}
	return nil
}

// ClearDraft discards userID's autosave slot.
func (s *LogService) ClearDraft(ctx context.Context, userID string) error {
	if err := s.store.ClearDraft(ctx, userID); err != nil {
		return fmt.Errorf("service.LogService.ClearDraft: %w", err)
	}
	return nil
}
