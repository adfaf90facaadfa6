package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/domain"
	"github.com/naminara/ferry-logbook/internal/handler"
	"github.com/naminara/ferry-logbook/internal/service"
)

// ---- mocks -----------------------------------------------------------------
// Test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockLogServicer struct {
	save       func(ctx context.Context, userID string, l domain.SailingLog) (domain.SailingLog, error)
	list       func(ctx context.Context, filter service.LogFilter, page domain.PaginationParams) ([]domain.SailingLog, int, error)
	delete     func(ctx context.Context, id string) error
	draft      func(ctx context.Context, userID string) (domain.SailingLog, error)
	saveDraft  func(ctx context.Context, userID string, l domain.SailingLog) error
	clearDraft func(ctx context.Context, userID string) error
}

func (m *mockLogServicer) Save(ctx context.Context, userID string, l domain.SailingLog) (domain.SailingLog, error) {
	return m.save(ctx, userID, l)
}
func (m *mockLogServicer) List(ctx context.Context, filter service.LogFilter, page domain.PaginationParams) ([]domain.SailingLog, int, error) {
	return m.list(ctx, filter, page)
}
func (m *mockLogServicer) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }
func (m *mockLogServicer) Draft(ctx context.Context, userID string) (domain.SailingLog, error) {
	return m.draft(ctx, userID)
}
func (m *mockLogServicer) SaveDraft(ctx context.Context, userID string, l domain.SailingLog) error {
	return m.saveDraft(ctx, userID, l)
}
func (m *mockLogServicer) ClearDraft(ctx context.Context, userID string) error {
	return m.clearDraft(ctx, userID)
}

type mockUserServicer struct {
	list   func(ctx context.Context) ([]domain.User, error)
	get    func(ctx context.Context, id string) (domain.User, error)
	create func(ctx context.Context, u domain.User) (domain.User, error)
	update func(ctx context.Context, u domain.User) (domain.User, error)
}

func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) { return m.list(ctx) }
func (m *mockUserServicer) Get(ctx context.Context, id string) (domain.User, error) {
	return m.get(ctx, id)
}
func (m *mockUserServicer) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserServicer) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}

type mockDashboardServicer struct {
	overview func(ctx context.Context) (service.Overview, error)
}

func (m *mockDashboardServicer) Overview(ctx context.Context) (service.Overview, error) {
	return m.overview(ctx)
}

type mockExportServicer struct {
	rows func(ctx context.Context, ids []string) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Rows(ctx context.Context, ids []string) ([]domain.ExportRow, error) {
	return m.rows(ctx, ids)
}

type mockNotifyServicer struct {
	config     func(ctx context.Context) (domain.NotificationConfig, error)
	saveConfig func(ctx context.Context, cfg domain.NotificationConfig) error
	testBot    func(ctx context.Context) (service.TestResult, error)
	broadcast  func(ctx context.Context, message string) (service.BroadcastResult, error)
}

func (m *mockNotifyServicer) Config(ctx context.Context) (domain.NotificationConfig, error) {
	return m.config(ctx)
}
func (m *mockNotifyServicer) SaveConfig(ctx context.Context, cfg domain.NotificationConfig) error {
	return m.saveConfig(ctx, cfg)
}
func (m *mockNotifyServicer) TestBot(ctx context.Context) (service.TestResult, error) {
	return m.testBot(ctx)
}
func (m *mockNotifyServicer) Broadcast(ctx context.Context, message string) (service.BroadcastResult, error) {
	return m.broadcast(ctx, message)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.LogServicer       = (*mockLogServicer)(nil)
	_ handler.UserServicer      = (*mockUserServicer)(nil)
	_ handler.DashboardServicer = (*mockDashboardServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
	_ handler.NotifyServicer    = (*mockNotifyServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// deps bundles the mocks a test wires into the router. Nil fields are fine
// as long as the test never routes into them.
type deps struct {
	logs      *mockLogServicer
	users     *mockUserServicer
	dashboard *mockDashboardServicer
	export    *mockExportServicer
	notify    *mockNotifyServicer
}

// tokens is shared across handler tests so every issued token verifies.
var tokens = auth.NewManager("handler-test-secret", time.Hour)

// newTestHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production. Metrics are skipped.
func newTestHandler(t *testing.T, d deps) http.Handler {
	t.Helper()
	if d.logs == nil {
		d.logs = &mockLogServicer{}
	}
	if d.users == nil {
		d.users = &mockUserServicer{}
	}
	if d.dashboard == nil {
		d.dashboard = &mockDashboardServicer{}
	}
	if d.export == nil {
		d.export = &mockExportServicer{}
	}
	if d.notify == nil {
		d.notify = &mockNotifyServicer{}
	}
	srv := handler.NewServer(d.logs, d.users, d.dashboard, d.export, d.notify, tokens)
	return srv.Routes(nil)
}

// authHeader returns an Authorization header value for a session with the
// given id and role.
func authHeader(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	token, err := tokens.Issue(domain.User{ID: userID, Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// doRequest runs one request through the router as the given session.
// Role may be empty to send no Authorization header.
func doRequest(t *testing.T, h http.Handler, method, target string, body *bytes.Buffer, header string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func completeLogFixture() domain.SailingLog {
	return domain.SailingLog{
		ID:              "log-1",
		Date:            "2026-08-30",
		DepartureTime:   "09:00",
		ArrivalTime:     "10:30",
		CaptainID:       "u2",
		ChiefEngineerID: "u3",
		CrewIDs:         []string{"u4"},
		PassengerCount:  120,
		ShipID:          "1",
		FuelStatus:      "85%",
		CreatedAt:       "2026-08-30T10:35:00Z",
	}
}
