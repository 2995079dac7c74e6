// internal/app/features/recommendations/update.go
package recommendations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/recommendationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/reconcile"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// HandleUpdate replaces the form fields of a recommendation. Only the
// authoring leader may edit, and only while the record is undecided.
// An established link survives field edits; it is formed once and
// never re-validated. An unlinked recommendation passes through the
// duplicate guard and gets another linking attempt with its new
// fields.
//
// Route: PUT /recommendations/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rec, ok2 := h.fetchRec(ctx, w, r)
	if !ok2 {
		return
	}
	if !recommendationpolicy.CanMutate(id, rec) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only the authoring leader may edit this recommendation"))
		return
	}
	if err := lifecycle.CheckMutable("recommendation", rec.Status); err != nil {
		apierr.WriteError(w, h.Log, err)
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
	if err := lifecycle.CheckRecommendationTransition(rec.Status, form.Status); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	// An unlinked recommendation re-enters the duplicate guard with
	// its new fields, so an edit cannot target a candidate who is
	// already recommended. An established link is never re-validated.
	if rec.LinkedApplicationID == nil {
		key := reconcile.KeyOf(form.FullName, form.Email, form.Stake, form.Ward)
		if err := h.Linker.CheckDuplicateExcluding(ctx, rec.LeaderID, key, rec.ID); err != nil {
			apierr.WriteError(w, h.Log, err)
			return
		}
	}

	updated, err := h.Recs.Replace(ctx, rec.ID, form.model(rec.LeaderID))
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	if updated.LinkedApplicationID == nil {
		linkedID, err := h.Linker.Link(ctx, updated)
		if err != nil {
			h.Log.Error("link step failed after update", zap.Error(err),
				zap.String("recommendation_id", updated.ID.Hex()))
		}
		updated.LinkedApplicationID = linkedID
	}

	apierr.WriteJSON(w, http.StatusOK, updated)
}

// fetchRec resolves the {id} route param to a recommendation, writing
// the 404 itself when the record is missing.
func (h *Handler) fetchRec(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Recommendation, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("recommendation"))
		return models.Recommendation{}, false
	}
	rec, err := h.Recs.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("recommendation"))
		return models.Recommendation{}, false
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return models.Recommendation{}, false
	}
	return rec, true
}
