package handler

import (
	"net/http"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// ListShips handles GET /api/ships. The fleet is a fixed catalog, so there
// is no service behind this endpoint.
func (s *Server) ListShips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Ship{"data": domain.ShipCatalog()})
}
