// internal/app/features/recommendations/delete.go
package recommendations

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/recommendationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleDelete removes an undecided recommendation. Author only; a
// decided recommendation is immutable, for everyone.
//
// Route: DELETE /recommendations/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, ok2 := h.fetchRec(ctx, w, r)
	if !ok2 {
		return
	}
	if !recommendationpolicy.CanMutate(id, rec) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only the authoring leader may delete this recommendation"))
		return
	}
	if err := lifecycle.CheckMutable("recommendation", rec.Status); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.Recs.Delete(ctx, rec.ID); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("recommendation deleted", zap.String("recommendation_id", rec.ID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
