package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naminara/ferry-logbook/internal/domain"
	"github.com/naminara/ferry-logbook/internal/repo"
	"github.com/naminara/ferry-logbook/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, repo.SlotRepo) {
	t.Helper()
	slots := repo.NewMemorySlotRepo()
	s, err := store.New(context.Background(), slots, nil)
	require.NoError(t, err)
	return s, slots
}

// logFixture returns a complete, arrived sailing log. Callers override
// fields as needed.
func logFixture(id string) domain.SailingLog {
	return domain.SailingLog{
		ID:              id,
		Date:            "2026-08-30",
		DepartureTime:   "09:00",
		ArrivalTime:     "10:30",
		CaptainID:       "u2",
		ChiefEngineerID: "u3",
		CrewIDs:         []string{"u4"},
		PassengerCount:  50,
		ShipID:          "1",
		FuelStatus:      "85%",
		CreatedAt:       "2026-08-30T10:35:00Z",
	}
}

// TestNew_zeroPriorState verifies that a store built over empty storage
// populates every collection with its documented defaults.
func TestNew_zeroPriorState(t *testing.T) {
	s, _ := newTestStore(t)

	users := s.Users()
	require.Len(t, users, 4)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)

	assert.Len(t, s.Logs(), 20)
	assert.Len(t, s.Ships(), 4)

	cfg := s.NotificationConfig()
	assert.Empty(t, cfg.BotToken)
	assert.Empty(t, cfg.Recipients)
}

// TestNew_reloadsPersistedState verifies that a second store over the same
// slots sees the first store's writes, not the defaults.
func TestNew_reloadsPersistedState(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	l := logFixture("log-roundtrip")
	l.ArrivalTime = "" // still underway
	l.ShipID = "4"     // seed set has ship 4 in progress; replace the set first
	require.NoError(t, s.ReplaceLogs(ctx, []domain.SailingLog{l}))

	reloaded, err := store.New(ctx, slots, nil)
	require.NoError(t, err)

	logs := reloaded.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "log-roundtrip", logs[0].ID)
	assert.True(t, logs[0].InProgress(), "in-progress classification must survive the slot round trip")
}

// TestNew_malformedSlotFallsBackToDefaults verifies the validate-or-fallback
// load policy: garbage in a slot yields defaults, not a construction error.
func TestNew_malformedSlotFallsBackToDefaults(t *testing.T) {
	slots := repo.NewMemorySlotRepo()
	ctx := context.Background()
	require.NoError(t, slots.Put(ctx, repo.SlotUsers, []byte("{not json")))

	s, err := store.New(ctx, slots, nil)

	require.NoError(t, err)
	assert.Len(t, s.Users(), 4)
}

// TestSaveLog_distinctIDs verifies the idempotent upsert property: saving n
// logs with distinct ids yields exactly n logs, each mapping to its latest
// payload, and new ids always enter at position 0.
func TestSaveLog_distinctIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceLogs(ctx, nil))

	for i := 0; i < 5; i++ {
		l := logFixture(fmt.Sprintf("log-new-%d", i))
		require.NoError(t, s.SaveLog(ctx, l))

		logs := s.Logs()
		require.Len(t, logs, i+1)
		assert.Equal(t, l.ID, logs[0].ID, "new log must be prepended at position 0")
	}
}

// TestSaveLog_sameIDReplacesInPlace verifies that re-saving an id updates the
// record without moving it.
func TestSaveLog_sameIDReplacesInPlace(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceLogs(ctx, []domain.SailingLog{
		logFixture("log-a"), logFixture("log-b"), logFixture("log-c"),
	}))

	updated := logFixture("log-b")
	updated.PassengerCount = 99
	updated.Notes = "revised"
	require.NoError(t, s.SaveLog(ctx, updated))

	logs := s.Logs()
	require.Len(t, logs, 3)
	assert.Equal(t, "log-b", logs[1].ID, "position must be preserved")
	assert.Equal(t, 99, logs[1].PassengerCount)
	assert.Equal(t, "revised", logs[1].Notes)
}

// TestSaveLog_secondInProgressSameShipRejected verifies the one-voyage-per-
// ship invariant: a save that would put a second in-progress log on the same
// ship fails with ErrConflict and leaves the collection untouched.
func TestSaveLog_secondInProgressSameShipRejected(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	underway := logFixture("log-underway")
	underway.ArrivalTime = ""
	require.NoError(t, s.ReplaceLogs(ctx, []domain.SailingLog{underway}))

	second := logFixture("log-second")
	second.ArrivalTime = ""
	err := s.SaveLog(ctx, second)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, s.Logs(), 1)
}

// TestSaveLog_updatingTheInProgressLogItself verifies that re-saving the
// in-progress log (e.g. recording the arrival) does not trip the invariant.
func TestSaveLog_updatingTheInProgressLogItself(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	underway := logFixture("log-underway")
	underway.ArrivalTime = ""
	require.NoError(t, s.ReplaceLogs(ctx, []domain.SailingLog{underway}))

	// Still underway, same id: allowed.
	underway.PassengerCount = 77
	require.NoError(t, s.SaveLog(ctx, underway))

	// Arrived: allowed, frees the ship.
	underway.ArrivalTime = "11:00"
	require.NoError(t, s.SaveLog(ctx, underway))

	next := logFixture("log-next")
	next.ArrivalTime = ""
	assert.NoError(t, s.SaveLog(ctx, next))
}

// TestSaveLog_inProgressOnDifferentShips verifies the invariant is scoped
// per ship.
func TestSaveLog_inProgressOnDifferentShips(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceLogs(ctx, nil))

	for i, ship := range []string{"1", "2", "3", "4"} {
		l := logFixture(fmt.Sprintf("log-ship-%d", i))
		l.ShipID = ship
		l.ArrivalTime = ""
		require.NoError(t, s.SaveLog(ctx, l))
	}
	assert.Len(t, s.Logs(), 4)
}

func TestDeleteLog(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceLogs(ctx, []domain.SailingLog{
		logFixture("log-a"), logFixture("log-b"),
	}))

	require.NoError(t, s.DeleteLog(ctx, "log-a"))

	logs := s.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "log-b", logs[0].ID)

	assert.ErrorIs(t, s.DeleteLog(ctx, "log-a"), domain.ErrNotFound)
}

func TestReplaceUsers_persists(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	users := append(s.Users(), domain.User{
		ID: "u5", Name: "Deckhand Park", Role: domain.RoleCrew, JoinedAt: "2026-08-31",
	})
	require.NoError(t, s.ReplaceUsers(ctx, users))

	reloaded, err := store.New(ctx, slots, nil)
	require.NoError(t, err)
	assert.Len(t, reloaded.Users(), 5)
}

func TestNotificationConfig_wholesaleReplace(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	cfg := domain.NotificationConfig{BotToken: "123:abc", Recipients: []string{"u1", "u2"}}
	require.NoError(t, s.SetNotificationConfig(ctx, cfg))
	assert.Equal(t, cfg, s.NotificationConfig())

	reloaded, err := store.New(ctx, slots, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded.NotificationConfig())
}

// TestDrafts covers the independent autosave channel: save, rehydrate,
// clear, and per-user isolation.
func TestDrafts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Draft(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	draft := logFixture("log-draft")
	draft.IsDraft = true
	draft.ArrivalTime = ""
	require.NoError(t, s.SaveDraft(ctx, "u2", draft))

	got, err := s.Draft(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, draft, got)

	// Another user's draft slot is untouched.
	_, err = s.Draft(ctx, "u3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.ClearDraft(ctx, "u2"))
	_, err = s.Draft(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Clearing again is a no-op.
	assert.NoError(t, s.ClearDraft(ctx, "u2"))
}
