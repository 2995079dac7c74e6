// internal/app/features/recommendations/handler.go
package recommendations

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	applicationstore "github.com/dalemusser/candidacyhub/internal/app/store/applications"
	commentstore "github.com/dalemusser/candidacyhub/internal/app/store/comments"
	recommendationstore "github.com/dalemusser/candidacyhub/internal/app/store/recommendations"
	"github.com/dalemusser/candidacyhub/internal/app/system/reconcile"
)

// Handler is the feature-level entry point for Recommendations: the
// candidacy forms leaders submit on behalf of their candidates, plus
// the comments reviewers attach to them.
type Handler struct {
	Apps     *applicationstore.Store
	Recs     *recommendationstore.Store
	Comments *commentstore.Store
	Linker   *reconcile.Linker
	Log      *zap.Logger
}

// NewHandler constructs a Recommendations handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	apps := applicationstore.New(db)
	recs := recommendationstore.New(db)
	return &Handler{
		Apps:     apps,
		Recs:     recs,
		Comments: commentstore.New(db),
		Linker:   reconcile.NewLinker(apps, recs, logger),
		Log:      logger,
	}
}
