// internal/app/system/reviewqueue/aggregate.go

// Package reviewqueue merges applications and recommendations into
// the single deduplicated feed reviewers see. The merge is pure: the
// feature layer fetches the scoped record slices and this package
// combines them in memory.
package reviewqueue

import (
	"sort"
	"time"

	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/reconcile"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// SortOrder selects the queue ordering.
type SortOrder int

const (
	// ByCreated sorts newest-created first (the review queue).
	ByCreated SortOrder = iota
	// ByUpdated sorts most-recently-updated first (a leader's own
	// list).
	ByUpdated
)

// Item is one entry in the merged queue. An application with a
// matched recommendation appears once, tagged both applied and
// recommended; the recommendation is absorbed into it.
type Item struct {
	Application    *models.Application    `json:"application,omitempty"`
	Recommendation *models.Recommendation `json:"recommendation,omitempty"`

	Applied     bool `json:"applied"`
	Recommended bool `json:"recommended"`

	// Status is the unified display status: recommendation statuses
	// are mapped into the application vocabulary (submitted shows as
	// awaiting) without touching the stored value.
	Status string `json:"status"`

	// CanEdit/CanDelete are derived for the viewing leader: a
	// recommendation absorbed into a matched application loses
	// independent mutability even before a decision.
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayStatus maps a stored recommendation status into the
// application status vocabulary for unified tab filtering.
func DisplayStatus(recStatus string) string {
	if recStatus == lifecycle.RecSubmitted {
		return lifecycle.AppAwaiting
	}
	return recStatus
}

// Build merges the scoped record slices into the viewer's queue.
//
// Each application yields one item. A recommendation is absorbed into
// the application it links to, or, when no link is persisted yet,
// into the single application it matches (tolerating lag between link
// creation and read). Recommendations that link or match nothing
// visible are emitted as their own items.
func Build(apps []models.Application, recs []models.Recommendation, viewer authz.Identity, order SortOrder) []Item {
	items := make([]Item, 0, len(apps)+len(recs))
	appIdx := make(map[string]int, len(apps))

	for i := range apps {
		app := &apps[i]
		items = append(items, Item{
			Application: app,
			Applied:     true,
			Status:      app.Status,
			CreatedAt:   app.CreatedAt,
			UpdatedAt:   app.UpdatedAt,
		})
		appIdx[app.ID.Hex()] = i
	}

	for i := range recs {
		rec := &recs[i]

		if idx, absorbed := matchTarget(rec, apps, appIdx); absorbed {
			if items[idx].Recommendation == nil {
				items[idx].Recommendation = rec
			}
			items[idx].Recommended = true
			continue
		}

		items = append(items, Item{
			Recommendation: rec,
			Recommended:    true,
			// A persisted link whose application fell outside the
			// viewer's scope still marks the candidate as applied.
			Applied:   rec.LinkedApplicationID != nil,
			Status:    DisplayStatus(rec.Status),
			CanEdit:   canMutateStandalone(rec, viewer),
			CanDelete: canMutateStandalone(rec, viewer),
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		if order == ByUpdated {
			return items[a].UpdatedAt.After(items[b].UpdatedAt)
		}
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
	return items
}

// matchTarget finds the visible application a recommendation belongs
// to. The persisted link wins; otherwise the match is recomputed and
// accepted only when exactly one visible application matches.
func matchTarget(rec *models.Recommendation, apps []models.Application, appIdx map[string]int) (int, bool) {
	if rec.LinkedApplicationID != nil {
		idx, ok := appIdx[rec.LinkedApplicationID.Hex()]
		return idx, ok
	}

	key := reconcile.RecommendationKey(*rec)
	found := -1
	for i := range apps {
		if reconcile.Matches(key, reconcile.ApplicationKey(apps[i])) {
			if found >= 0 {
				return 0, false // ambiguous: leave standalone
			}
			found = i
		}
	}
	return found, found >= 0
}

// canMutateStandalone derives the edit/delete flag for an unabsorbed
// recommendation: author only, and never once decided.
func canMutateStandalone(rec *models.Recommendation, viewer authz.Identity) bool {
	return rec.LinkedApplicationID == nil &&
		rec.LeaderID == viewer.UserID &&
		!lifecycle.IsTerminal(rec.Status)
}
