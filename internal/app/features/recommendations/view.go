// internal/app/features/recommendations/view.go
package recommendations

import (
	"context"
	"net/http"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/recommendationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleView returns one recommendation.
//
// Route: GET /recommendations/{id}
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, ok2 := h.fetchRec(ctx, w, r)
	if !ok2 {
		return
	}
	if !recommendationpolicy.CanView(id, rec) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to view this recommendation"))
		return
	}

	apierr.WriteJSON(w, http.StatusOK, rec)
}
