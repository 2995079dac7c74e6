// internal/app/features/applications/view.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/applicationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
)

// HandleView returns one application. The linked recommendation, when
// one exists, is derived by lookup since the link is stored only on
// the recommendation side.
//
// Route: GET /applications/{id}
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Existence is settled before authorization so both misses and
	// denials look the same to a probing caller.
	app, err := h.Apps.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("application"))
		return
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if !applicationpolicy.CanView(id, app) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to view this application"))
		return
	}

	resp := applicationResponse{Application: app}
	if rec, err := h.Recs.GetLinkedTo(ctx, app.ID); err == nil {
		resp.LinkedRecommendationID = &rec.ID
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, err)
		return
	}

	apierr.WriteJSON(w, http.StatusOK, resp)
}
