package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/naminara/ferry-logbook/internal/domain"
)

type loginRequest struct {
	UserID string `json:"user_id"`
}

type loginResponse struct {
	Token      string             `json:"token"`
	User       domain.User        `json:"user"`
	Navigation navigationResponse `json:"navigation"`
}

// Login handles POST /api/auth/login. Sessions are picked by user id, there
// is no password step. A successful login returns the signed session token
// together with the views the role may open and its landing view.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "user_id is required")
		return
	}

	user, err := s.users.Get(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unknown user")
			return
		}
		writeDomainError(w, err)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:      token,
		User:       user,
		Navigation: navigationFor(user.Role),
	})
}
