// internal/app/features/recommendations/status.go
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
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleStatus changes a recommendation's status. Two distinct powers
// meet here: the authoring leader moves their own record between
// draft and submitted (including the cancel-submission path back to
// draft), while admins and approved session leaders record the
// terminal decision. A decided recommendation never changes again.
//
// Route: POST /recommendations/{id}/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
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

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	to := normalize.Status(req.Status)

	switch to {
	case lifecycle.RecDraft, lifecycle.RecSubmitted:
		if !recommendationpolicy.CanMutate(id, rec) {
			apierr.WriteError(w, h.Log, apperrors.Authorization("only the authoring leader may change this recommendation"))
			return
		}
	default:
		// Terminal targets and unknown statuses go through the
		// decision gate; the transition check below rejects unknowns.
		if !recommendationpolicy.CanDecide(id) {
			apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to decide recommendation status"))
			return
		}
	}

	if err := lifecycle.CheckRecommendationTransition(rec.Status, to); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	updated, err := h.Recs.SetStatus(ctx, rec.ID, to)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("recommendation status changed",
		zap.String("recommendation_id", rec.ID.Hex()),
		zap.String("from", rec.Status),
		zap.String("to", to),
		zap.String("changed_by", id.UserID.Hex()))

	apierr.WriteJSON(w, http.StatusOK, updated)
}
