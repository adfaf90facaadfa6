package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/domain"
	"github.com/naminara/ferry-logbook/internal/service"
)

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type logListResponse struct {
	Data       []domain.SailingLog `json:"data"`
	Pagination pagination          `json:"pagination"`
}

// ListLogs handles GET /api/logs.
// Supports ?search= (ship or captain name), ?ship=, ?date=, and ?page= /
// ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.LogFilter{
		Search: q.Get("search"),
		ShipID: q.Get("ship"),
		Date:   q.Get("date"),
	}
	params := domain.NewPaginationParams(queryInt(q.Get("page")), queryInt(q.Get("limit")))

	logs, total, err := s.logs.List(r.Context(), filter, params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logListResponse{
		Data:       logs,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// SaveLog handles POST /api/logs. It upserts by log id: a body with the id
// of an existing log replaces it in place, anything else becomes the newest
// entry. Final saves must pass completeness validation; a body with isDraft
// set skips it so a departure can be recorded before arrival. Either way a
// second voyage for a ship already underway is rejected with 409.
func (s *Server) SaveLog(w http.ResponseWriter, r *http.Request) {
	var l domain.SailingLog
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}

	claims, _ := auth.ClaimsFrom(r.Context())
	saved, err := s.logs.Save(r.Context(), claims.UserID, l)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// DeleteLog handles DELETE /api/logs/{id}.
func (s *Server) DeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := s.logs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDraft handles GET /api/logs/draft. Each user has their own draft slot;
// 404 means no draft is stashed.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	draft, err := s.logs.Draft(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "no draft saved")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// PutDraft handles PUT /api/logs/draft. The autosave slot takes whatever
// the form holds, no validation: the whole point is to preserve
// half-finished input across sessions.
func (s *Server) PutDraft(w http.ResponseWriter, r *http.Request) {
	var l domain.SailingLog
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}

	claims, _ := auth.ClaimsFrom(r.Context())
	if err := s.logs.SaveDraft(r.Context(), claims.UserID, l); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDraft handles DELETE /api/logs/draft. Deleting an absent draft is
// not an error.
func (s *Server) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	if err := s.logs.ClearDraft(r.Context(), claims.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses a positive query integer, returning nil when absent or
// malformed so pagination falls back to its defaults.
func queryInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
