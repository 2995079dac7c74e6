// internal/app/features/applications/delete.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/applicationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleDelete removes the caller's own application while it is still
// undecided. Decided applications are immutable, for everyone.
//
// Route: DELETE /applications/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("application"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.Apps.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("application"))
		return
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if !applicationpolicy.CanMutate(id, app) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to delete this application"))
		return
	}
	if err := lifecycle.CheckMutable("application", app.Status); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.Apps.Delete(ctx, app.ID); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("application deleted", zap.String("application_id", app.ID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
