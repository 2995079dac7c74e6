// internal/app/features/recommendations/list.go
package recommendations

import (
	"context"
	"net/http"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/queuepolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// HandleList returns recommendations within the caller's visibility.
// Leaders always get their own, drafts included; wider scopes add the
// submitted records of the whole pool or one stake. Drafts other than
// the caller's own are never listed.
//
// Route: GET /recommendations
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	scope := queuepolicy.ScopeFor(id)
	if !scope.CanView {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to list recommendations"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		recs []models.Recommendation
		err  error
	)
	switch {
	case scope.All:
		recs, err = h.Recs.ListNonDraft(ctx)
	case scope.StakeCI != "":
		recs, err = h.Recs.ListNonDraftByStake(ctx, scope.StakeCI)
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	if !scope.LeaderID.IsZero() {
		own, err := h.Recs.ListByLeader(ctx, scope.LeaderID)
		if err != nil {
			apierr.WriteError(w, h.Log, err)
			return
		}
		seen := make(map[string]struct{}, len(recs))
		for _, rec := range recs {
			seen[rec.ID.Hex()] = struct{}{}
		}
		for _, rec := range own {
			if _, dup := seen[rec.ID.Hex()]; !dup {
				recs = append(recs, rec)
			}
		}
	}

	if recs == nil {
		recs = []models.Recommendation{}
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}
