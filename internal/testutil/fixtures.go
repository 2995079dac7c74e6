// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: an existing route context keeps its earlier params.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		rctx.URLParams.Add(key, value)
		return r
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role. Leader roles
// get leaderStatus applied; pass "" for non-leaders.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role, leaderStatus, stake, ward string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		AuthMethod:   "password",
		Role:         role,
		LeaderStatus: leaderStatus,
		Stake:        stake,
		Ward:         ward,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateApplication inserts an application owned by userID with the
// folded match fields populated.
func (f *Fixtures) CreateApplication(ctx context.Context, userID primitive.ObjectID, fullName, email, stake, ward, status string) models.Application {
	f.t.Helper()

	now := time.Now().UTC()
	app := models.Application{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Age:        25,
		Email:      email,
		EmailCI:    text.Fold(email),
		Stake:      stake,
		StakeCI:    text.Fold(stake),
		Ward:       ward,
		WardCI:     text.Fold(ward),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

// CreateRecommendation inserts a recommendation authored by leaderID.
// Email may be empty to exercise the name-matching fallback.
func (f *Fixtures) CreateRecommendation(ctx context.Context, leaderID primitive.ObjectID, fullName, email, stake, ward, status string) models.Recommendation {
	f.t.Helper()

	now := time.Now().UTC()
	rec := models.Recommendation{
		ID:         primitive.NewObjectID(),
		LeaderID:   leaderID,
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Age:        25,
		Email:      email,
		EmailCI:    text.Fold(email),
		Stake:      stake,
		StakeCI:    text.Fold(stake),
		Ward:       ward,
		WardCI:     text.Fold(ward),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("recommendations").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test recommendation: %v", err)
	}
	return rec
}

// CreateMemo inserts a memo on an application.
func (f *Fixtures) CreateMemo(ctx context.Context, appID, authorID primitive.ObjectID, authorRole, content string) models.Memo {
	f.t.Helper()

	now := time.Now().UTC()
	memo := models.Memo{
		ID:            primitive.NewObjectID(),
		ApplicationID: appID,
		AuthorID:      authorID,
		AuthorName:    "Test Author",
		AuthorRole:    authorRole,
		Content:       content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("memos").InsertOne(ctx, memo); err != nil {
		f.t.Fatalf("failed to create test memo: %v", err)
	}
	return memo
}

// CreateComment inserts a comment on a recommendation.
func (f *Fixtures) CreateComment(ctx context.Context, recID, authorID primitive.ObjectID, authorRole, content string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	comment := models.Comment{
		ID:               primitive.NewObjectID(),
		RecommendationID: recID,
		AuthorID:         authorID,
		AuthorName:       "Test Author",
		AuthorRole:       authorRole,
		Content:          content,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
