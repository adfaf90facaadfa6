package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// ListUsers handles GET /api/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.User{"data": users})
}

// CreateUser handles POST /api/users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}

	created, err := s.users.Create(r.Context(), u)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateUser handles PUT /api/users/{id}. Only the name and Telegram chat
// id are editable; the path id wins over any id in the body.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}
	u.ID = chi.URLParam(r, "id")

	updated, err := s.users.Update(r.Context(), u)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
