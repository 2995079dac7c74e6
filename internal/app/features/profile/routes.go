// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the profile endpoints, typically under "/profile".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.HandleView)
	r.Put("/", h.HandleUpdate)
	return r
}
