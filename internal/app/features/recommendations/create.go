// internal/app/features/recommendations/create.go
package recommendations

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/recommendationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/reconcile"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleCreate records a new recommendation, runs the duplicate guard
// before writing, and then tries to link the recommendation to the one
// application describing the same candidate. Create and link are two
// separate writes; if the second never happens, the queue still pairs
// the records by recomputing the match on read.
//
// Route: POST /recommendations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	// Pending leaders may still author their own recommendations.
	if !recommendationpolicy.CanCreate(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only leaders may create recommendations"))
		return
	}

	var form recommendationForm
	if err := decodeJSON(w, r, &form); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if err := form.validate(); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	key := reconcile.KeyOf(form.FullName, form.Email, form.Stake, form.Ward)
	if err := h.Linker.CheckDuplicate(ctx, id.UserID, key); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	rec, err := h.Recs.Create(ctx, form.model(id.UserID))
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	linkedID, err := h.Linker.Link(ctx, rec)
	if err != nil {
		// The recommendation exists; linking can be retried on the
		// next read. Surface the record, not the failure.
		h.Log.Error("link step failed after create", zap.Error(err),
			zap.String("recommendation_id", rec.ID.Hex()))
	}
	rec.LinkedApplicationID = linkedID

	h.Log.Info("recommendation created",
		zap.String("recommendation_id", rec.ID.Hex()),
		zap.String("leader_id", id.UserID.Hex()),
		zap.Bool("linked", linkedID != nil))
	apierr.WriteJSON(w, http.StatusCreated, rec)
}
