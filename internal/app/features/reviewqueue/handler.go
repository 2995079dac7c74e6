// internal/app/features/reviewqueue/handler.go
package reviewqueue

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/queuepolicy"
	applicationstore "github.com/dalemusser/candidacyhub/internal/app/store/applications"
	recommendationstore "github.com/dalemusser/candidacyhub/internal/app/store/recommendations"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/paging"
	"github.com/dalemusser/candidacyhub/internal/app/system/reviewqueue"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// Handler serves the merged review queue.
type Handler struct {
	Apps *applicationstore.Store
	Recs *recommendationstore.Store
	Log  *zap.Logger
}

// NewHandler constructs a review queue handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Apps: applicationstore.New(db),
		Recs: recommendationstore.New(db),
		Log:  logger,
	}
}

// HandleQueue returns the caller's merged queue of applications and
// recommendations, deduplicated so a matched pair appears once. The
// ?status= filter applies to the unified display status, ?tag=
// keeps only applied or recommended items, ?sort= selects created
// (default) or updated ordering, and ?start= pages through the
// result.
//
// Route: GET /review-queue
func (h *Handler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	scope := queuepolicy.ScopeFor(id)
	if !scope.CanView {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to view the review queue"))
		return
	}

	status := normalize.Status(r.URL.Query().Get("status"))
	if status != "" && !lifecycle.ValidApplicationStatus(status) {
		apierr.WriteError(w, h.Log, apperrors.Validation("unknown status filter"))
		return
	}
	tag := r.URL.Query().Get("tag")
	if tag != "" && tag != "applied" && tag != "recommended" {
		apierr.WriteError(w, h.Log, apperrors.Validation("unknown tag filter"))
		return
	}
	order := reviewqueue.ByCreated
	if r.URL.Query().Get("sort") == "updated" {
		order = reviewqueue.ByUpdated
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	apps, recs, err := h.fetchScoped(ctx, scope)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	items := reviewqueue.Build(apps, recs, id, order)
	if status != "" || tag != "" {
		filtered := items[:0]
		for _, it := range items {
			if status != "" && it.Status != status {
				continue
			}
			if tag == "applied" && !it.Applied {
				continue
			}
			if tag == "recommended" && !it.Recommended {
				continue
			}
			filtered = append(filtered, it)
		}
		items = filtered
	}

	apierr.WriteJSON(w, http.StatusOK, paging.Window(items, paging.ParseStart(r)))
}

// fetchScoped loads the record slices the viewer's scope names:
// everything, one stake, or nothing beyond the leader's own
// recommendations. A leader's own records (drafts included) are
// always added on top of the wider slice.
func (h *Handler) fetchScoped(ctx context.Context, scope queuepolicy.Scope) ([]models.Application, []models.Recommendation, error) {
	var (
		apps []models.Application
		recs []models.Recommendation
		err  error
	)

	switch {
	case scope.All:
		if apps, err = h.Apps.ListAll(ctx, ""); err != nil {
			return nil, nil, err
		}
		if recs, err = h.Recs.ListNonDraft(ctx); err != nil {
			return nil, nil, err
		}
	case scope.StakeCI != "":
		if apps, err = h.Apps.ListByStake(ctx, scope.StakeCI, ""); err != nil {
			return nil, nil, err
		}
		if recs, err = h.Recs.ListNonDraftByStake(ctx, scope.StakeCI); err != nil {
			return nil, nil, err
		}
	}

	if !scope.LeaderID.IsZero() {
		own, err := h.Recs.ListByLeader(ctx, scope.LeaderID)
		if err != nil {
			return nil, nil, err
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
	return apps, recs, nil
}
