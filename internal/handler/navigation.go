package handler

import (
	"net/http"

	"github.com/naminara/ferry-logbook/internal/auth"
	"github.com/naminara/ferry-logbook/internal/domain"
)

type navigationResponse struct {
	Views   []domain.View `json:"views"`
	Landing domain.View   `json:"landing"`
}

type resolvedNavigationResponse struct {
	navigationResponse
	Resolved domain.View `json:"resolved"`
}

func navigationFor(role domain.Role) navigationResponse {
	return navigationResponse{
		Views:   domain.AllowedViews(role),
		Landing: domain.DefaultView(role),
	}
}

// Navigation handles GET /api/navigation. It returns the views the session
// role may open and its landing view. With ?view= it additionally resolves
// a requested view: the view itself when permitted, the landing otherwise.
func (s *Server) Navigation(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())
	nav := navigationFor(claims.Role)

	if requested := r.URL.Query().Get("view"); requested != "" {
		writeJSON(w, http.StatusOK, resolvedNavigationResponse{
			navigationResponse: nav,
			Resolved:           domain.ResolveView(claims.Role, domain.View(requested)),
		})
		return
	}
	writeJSON(w, http.StatusOK, nav)
}
