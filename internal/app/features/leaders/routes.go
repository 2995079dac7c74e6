// internal/app/features/leaders/routes.go
package leaders

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin-only leader management endpoints, typically
// under "/leaders".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(roles.Admin))

	r.Get("/", h.HandleList)
	r.Post("/{id}/approve", h.HandleApprove)
	r.Post("/{id}/role", h.HandleSetRole)

	return r
}
