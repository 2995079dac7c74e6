// internal/app/features/applications/status.go
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
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleStatus records a decision on an application. Only admins and
// approved session leaders decide; bishops and stake presidents never
// do. A decided application is immutable afterwards.
//
// Route: POST /applications/{id}/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
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
	if !applicationpolicy.CanDecide(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to decide application status"))
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	to := normalize.Status(req.Status)
	if err := lifecycle.CheckApplicationTransition(app.Status, to); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	updated, err := h.Apps.SetStatus(ctx, app.ID, to)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("application status changed",
		zap.String("application_id", app.ID.Hex()),
		zap.String("from", app.Status),
		zap.String("to", to),
		zap.String("decided_by", id.UserID.Hex()))

	apierr.WriteJSON(w, http.StatusOK, applicationResponse{Application: updated})
}
