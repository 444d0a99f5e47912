package api

import (
	"net/http"

	"github.com/Jeffreasy/PasswordLab/internal/api/helpers"
)

// HealthHandler reports liveness and the active adaptive algorithm.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		helpers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"algorithm": string(s.Algorithm),
		})
	}
}
