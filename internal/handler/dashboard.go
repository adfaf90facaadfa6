package handler

import "net/http"

// Dashboard handles GET /api/dashboard. It returns the fleet overview:
// per-ship voyage status and occupancy plus today's totals.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
