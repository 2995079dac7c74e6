// internal/app/features/applications/handler.go
package applications

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	applicationstore "github.com/dalemusser/candidacyhub/internal/app/store/applications"
	memostore "github.com/dalemusser/candidacyhub/internal/app/store/memos"
	recommendationstore "github.com/dalemusser/candidacyhub/internal/app/store/recommendations"
)

// Handler is the feature-level entry point for Applications: the
// candidacy forms applicants submit for themselves, plus the memos
// reviewers attach to them.
type Handler struct {
	Apps  *applicationstore.Store
	Recs  *recommendationstore.Store
	Memos *memostore.Store
	Log   *zap.Logger
}

// NewHandler constructs an Applications handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Apps:  applicationstore.New(db),
		Recs:  recommendationstore.New(db),
		Memos: memostore.New(db),
		Log:   logger,
	}
}
