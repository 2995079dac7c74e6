// internal/app/features/recommendations/routes.go
package recommendations

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Recommendation routes under the base path
// (typically "/recommendations" from bootstrap). Ownership, approval
// and status checks live in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleView)
	r.Put("/{id}", h.HandleUpdate)
	r.Post("/{id}/status", h.HandleStatus)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/comments", h.HandleCreateComment)
	r.Get("/{id}/comments", h.HandleListComments)
	r.Patch("/{id}/comments/{commentID}", h.HandleUpdateComment)
	r.Delete("/{id}/comments/{commentID}", h.HandleDeleteComment)

	return r
}
