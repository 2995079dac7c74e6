// internal/app/system/reconcile/linker.go
package reconcile

import (
	"context"

	applicationstore "github.com/dalemusser/candidacyhub/internal/app/store/applications"
	recommendationstore "github.com/dalemusser/candidacyhub/internal/app/store/recommendations"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Linker runs the duplicate guard before a recommendation is created
// and the link step after. Create and link are two sequential writes
// with no transaction; a crash between them leaves an unlinked
// recommendation, which the review queue tolerates by recomputing
// matches on read, and re-running Link heals it.
type Linker struct {
	apps *applicationstore.Store
	recs *recommendationstore.Store
	log  *zap.Logger
}

func NewLinker(apps *applicationstore.Store, recs *recommendationstore.Store, logger *zap.Logger) *Linker {
	return &Linker{apps: apps, recs: recs, log: logger}
}

// candidates returns the applications that match the key under the
// §reconcile predicate.
func (l *Linker) candidates(ctx context.Context, key Key) ([]models.Application, error) {
	// With an email the triple query is exact; without one we scan
	// the stake/ward pair and fall back to name matching.
	if key.Email != "" {
		apps, err := l.apps.FindByMatchKey(ctx, key.Email, key.Stake, key.Ward)
		if err != nil {
			return nil, err
		}
		// Applications without an email still match by name.
		more, err := l.apps.FindByStakeWard(ctx, key.Stake, key.Ward)
		if err != nil {
			return nil, err
		}
		for _, a := range more {
			if a.EmailCI == "" && Matches(key, ApplicationKey(a)) {
				apps = append(apps, a)
			}
		}
		return apps, nil
	}

	all, err := l.apps.FindByStakeWard(ctx, key.Stake, key.Ward)
	if err != nil {
		return nil, err
	}
	var out []models.Application
	for _, a := range all {
		if Matches(key, ApplicationKey(a)) {
			out = append(out, a)
		}
	}
	return out, nil
}

// CheckDuplicate rejects a new recommendation when the candidate is
// already recommended: either the same leader already has a
// recommendation matching this candidate, or an existing
// recommendation is already linked to the application this key
// matches.
func (l *Linker) CheckDuplicate(ctx context.Context, leaderID primitive.ObjectID, key Key) error {
	return l.checkDuplicate(ctx, leaderID, key, primitive.NilObjectID)
}

// CheckDuplicateExcluding applies the same guard while an existing
// recommendation is being edited, ignoring the record under edit so it
// does not collide with itself.
func (l *Linker) CheckDuplicateExcluding(ctx context.Context, leaderID primitive.ObjectID, key Key, exclude primitive.ObjectID) error {
	return l.checkDuplicate(ctx, leaderID, key, exclude)
}

func (l *Linker) checkDuplicate(ctx context.Context, leaderID primitive.ObjectID, key Key, exclude primitive.ObjectID) error {
	mine, err := l.recs.FindByLeaderAndMatchKey(ctx, leaderID, key.Stake, key.Ward)
	if err != nil {
		return err
	}
	for _, r := range mine {
		if r.ID == exclude {
			continue
		}
		if Matches(key, RecommendationKey(r)) {
			return apperrors.DuplicateRecommendation()
		}
	}

	apps, err := l.candidates(ctx, key)
	if err != nil {
		return err
	}
	if len(apps) == 1 {
		linked, err := l.recs.ExistsLinkedTo(ctx, apps[0].ID)
		if err != nil {
			return err
		}
		if linked {
			return apperrors.DuplicateRecommendation()
		}
	}
	return nil
}

// Link finds the application the recommendation describes and
// persists the link. Exactly one candidate links; zero or several
// leave the recommendation unlinked (ambiguity is not resolved here).
// Idempotent: an already-linked recommendation is returned unchanged.
func (l *Linker) Link(ctx context.Context, rec models.Recommendation) (*primitive.ObjectID, error) {
	if rec.LinkedApplicationID != nil {
		return rec.LinkedApplicationID, nil
	}

	apps, err := l.candidates(ctx, RecommendationKey(rec))
	if err != nil {
		return nil, err
	}
	switch len(apps) {
	case 0:
		return nil, nil
	case 1:
		if err := l.recs.SetLinkedApplication(ctx, rec.ID, apps[0].ID); err != nil {
			return nil, err
		}
		l.log.Info("recommendation linked to application",
			zap.String("recommendation_id", rec.ID.Hex()),
			zap.String("application_id", apps[0].ID.Hex()))
		return &apps[0].ID, nil
	default:
		l.log.Warn("ambiguous candidate match; leaving recommendation unlinked",
			zap.String("recommendation_id", rec.ID.Hex()),
			zap.Int("candidates", len(apps)))
		return nil, nil
	}
}
