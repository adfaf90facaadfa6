package handler

import (
	"encoding/json"
	"net/http"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// GetNotifyConfig handles GET /api/notifications/config.
func (s *Server) GetNotifyConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.notify.Config(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// PutNotifyConfig handles PUT /api/notifications/config. The config is
// replaced wholesale, recipients included.
func (s *Server) PutNotifyConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.NotificationConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}

	if err := s.notify.SaveConfig(r.Context(), cfg); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

type testBotResponse struct {
	OK        bool  `json:"ok"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// TestNotifyBot handles POST /api/notifications/test. It checks the
// configured bot token against the messaging service and reports how long
// the round trip took.
func (s *Server) TestNotifyBot(w http.ResponseWriter, r *http.Request) {
	result, err := s.notify.TestBot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, testBotResponse{
		OK:        result.OK,
		ElapsedMs: result.Elapsed.Milliseconds(),
	})
}

type sendRequest struct {
	Message string `json:"message"`
}

// SendNotification handles POST /api/notifications/send. It broadcasts the
// message to every configured recipient with a linked chat id and reports
// delivery counts.
func (s *Server) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON")
		return
	}

	result, err := s.notify.Broadcast(r.Context(), req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
