// Package handler implements the HTTP layer of the ferry operations API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, log.go, etc.) but all share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/domain"
	"github.com/naminara/ferry-logbook/internal/metrics"
	"github.com/naminara/ferry-logbook/internal/middleware"
	"github.com/naminara/ferry-logbook/internal/service"
)

// LogServicer defines the sailing log operations the handlers depend on.
// Defining interfaces here (in the consumer package) lets handler tests
// inject mocks without touching the store or service layer.
type LogServicer interface {
	Save(ctx context.Context, userID string, l domain.SailingLog) (domain.SailingLog, error)
	List(ctx context.Context, filter service.LogFilter, page domain.PaginationParams) ([]domain.SailingLog, int, error)
	Delete(ctx context.Context, id string) error
	Draft(ctx context.Context, userID string) (domain.SailingLog, error)
	SaveDraft(ctx context.Context, userID string, l domain.SailingLog) error
	ClearDraft(ctx context.Context, userID string) error
}

// UserServicer defines the roster operations the handlers depend on.
type UserServicer interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
}

// DashboardServicer provides the fleet status overview.
type DashboardServicer interface {
	Overview(ctx context.Context) (service.Overview, error)
}

// ExportServicer resolves selected log ids into export rows.
type ExportServicer interface {
	Rows(ctx context.Context, ids []string) ([]domain.ExportRow, error)
}

// NotifyServicer defines the notification operations the handlers depend on.
type NotifyServicer interface {
	Config(ctx context.Context) (domain.NotificationConfig, error)
	SaveConfig(ctx context.Context, cfg domain.NotificationConfig) error
	TestBot(ctx context.Context) (service.TestResult, error)
	Broadcast(ctx context.Context, message string) (service.BroadcastResult, error)
}

// TokenManager issues session tokens at login and verifies them on every
// authenticated request. Satisfied by auth.Manager.
type TokenManager interface {
	Issue(user domain.User) (string, error)
	Verify(token string) (auth.Claims, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	logs      LogServicer
	users     UserServicer
	dashboard DashboardServicer
	export    ExportServicer
	notify    NotifyServicer
	tokens    TokenManager
}

// NewServer constructs the Server with all its dependencies.
func NewServer(logs LogServicer, users UserServicer, dashboard DashboardServicer, export ExportServicer, notify NotifyServicer, tokens TokenManager) *Server {
	return &Server{
		logs:      logs,
		users:     users,
		dashboard: dashboard,
		export:    export,
		notify:    notify,
		tokens:    tokens,
	}
}

// Routes mounts every endpoint on a chi router. Role gating mirrors the
// console menu: roster, fleet status, and notification management are
// admin only, while log entry, history, and export are open to all crew
// roles. reg may be nil to skip the /metrics endpoint.
func (s *Server) Routes(reg *metrics.Registry) http.Handler {
	r := chi.NewRouter()
	if reg != nil {
		r.Use(middleware.NewMetricsHandler(reg))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg.Gatherer(), promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthHandler(s.tokens))

			r.Get("/navigation", s.Navigation)
			r.Get("/ships", s.ListShips)

			r.Get("/logs", s.ListLogs)
			r.Post("/logs", s.SaveLog)
			r.Delete("/logs/{id}", s.DeleteLog)
			r.Get("/logs/draft", s.GetDraft)
			r.Put("/logs/draft", s.PutDraft)
			r.Delete("/logs/draft", s.DeleteDraft)

			r.Post("/export", s.ExportLogs)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))

				r.Get("/dashboard", s.Dashboard)

				r.Get("/users", s.ListUsers)
				r.Post("/users", s.CreateUser)
				r.Put("/users/{id}", s.UpdateUser)

				r.Get("/notifications/config", s.GetNotifyConfig)
				r.Put("/notifications/config", s.PutNotifyConfig)
				r.Post("/notifications/test", s.TestNotifyBot)
				r.Post("/notifications/send", s.SendNotification)
			})
		})
	})

	return r
}
