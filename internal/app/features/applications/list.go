// internal/app/features/applications/list.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/applicationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// HandleList returns applications within the caller's visibility:
// everything for admins and approved session leaders, one stake for
// approved bishops and stake presidents, and only their own record
// for applicants. An optional ?status= filter narrows the result.
//
// Route: GET /applications
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	scope := applicationpolicy.ScopeForList(id)
	if !scope.CanList {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to list applications"))
		return
	}

	status := normalize.Status(r.URL.Query().Get("status"))
	if status != "" && !lifecycle.ValidApplicationStatus(status) {
		apierr.WriteError(w, h.Log, apperrors.Validation("unknown status filter"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		apps []models.Application
		err  error
	)
	switch {
	case scope.SelfOnly:
		var own models.Application
		own, err = h.Apps.GetByUserID(ctx, id.UserID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = nil
		} else if err == nil && (status == "" || own.Status == status) {
			apps = []models.Application{own}
		}
	case scope.StakeCI != "":
		apps, err = h.Apps.ListByStake(ctx, scope.StakeCI, status)
	default:
		apps, err = h.Apps.ListAll(ctx, status)
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}
