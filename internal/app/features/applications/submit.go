// internal/app/features/applications/submit.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/applicationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleSubmit creates the caller's application on first submit and
// replaces it on every later one. At most one application exists per
// user; re-submitting is an update, never a second record.
//
// Route: POST /applications
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	if !applicationpolicy.CanSubmit(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only applicants may submit an application"))
		return
	}

	var form applicationForm
	if err := decodeJSON(w, r, &form); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if err := form.validate(); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Apps.GetByUserID(ctx, id.UserID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		created, err := h.Apps.Create(ctx, form.model(id.UserID))
		if err != nil {
			apierr.WriteError(w, h.Log, err)
			return
		}
		h.Log.Info("application created",
			zap.String("application_id", created.ID.Hex()),
			zap.String("status", created.Status))
		apierr.WriteJSON(w, http.StatusCreated, applicationResponse{Application: created})

	case err != nil:
		apierr.WriteError(w, h.Log, err)

	default:
		// Re-submit: a decided application never changes again.
		if err := lifecycle.CheckMutable("application", existing.Status); err != nil {
			apierr.WriteError(w, h.Log, err)
			return
		}
		if err := lifecycle.CheckApplicationTransition(existing.Status, form.Status); err != nil {
			apierr.WriteError(w, h.Log, err)
			return
		}
		updated, err := h.Apps.Replace(ctx, existing.ID, form.model(id.UserID))
		if err != nil {
			apierr.WriteError(w, h.Log, err)
			return
		}
		apierr.WriteJSON(w, http.StatusOK, applicationResponse{Application: updated})
	}
}
