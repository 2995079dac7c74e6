// internal/app/features/applications/routes.go
package applications

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Application routes under the base path
// (typically "/applications" from bootstrap). Fine-grained checks
// (ownership, stake scope, status) live in the handlers; the router
// only requires a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleSubmit)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleView)
	r.Post("/{id}/status", h.HandleStatus)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/memos", h.HandleCreateMemo)
	r.Get("/{id}/memos", h.HandleListMemos)
	r.Patch("/{id}/memos/{memoID}", h.HandleUpdateMemo)
	r.Delete("/{id}/memos/{memoID}", h.HandleDeleteMemo)

	return r
}
