// internal/app/features/reviewqueue/routes.go
package reviewqueue

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the review queue under the base path (typically
// "/review-queue" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.HandleQueue)
	return r
}
