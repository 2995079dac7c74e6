// internal/app/store/recommendations/recommendationstore.go
package recommendationstore

import (
	"context"
	"time"

	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("recommendations")}
}

func fold(rec *models.Recommendation) {
	rec.FullNameCI = text.Fold(rec.FullName)
	rec.EmailCI = text.Fold(rec.Email)
	rec.StakeCI = text.Fold(rec.Stake)
	rec.WardCI = text.Fold(rec.Ward)
}

// Create inserts a new recommendation, assigning ID, folded fields,
// and timestamps. Linking to an application happens afterwards as a
// separate write (see reconcile.Linker).
func (s *Store) Create(ctx context.Context, rec models.Recommendation) (models.Recommendation, error) {
	now := time.Now().UTC()
	rec.ID = primitive.NewObjectID()
	fold(&rec)
	rec.LinkedApplicationID = nil
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.Recommendation{}, err
	}
	return rec, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Recommendation, error) {
	var rec models.Recommendation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		return models.Recommendation{}, err
	}
	return rec, nil
}

// Replace overwrites the mutable form fields and status of an
// existing recommendation, refreshing folded fields and UpdatedAt.
// The stored link is left untouched: a formed link is not re-evaluated
// when the underlying fields change.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, rec models.Recommendation) (models.Recommendation, error) {
	fold(&rec)
	rec.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"full_name":    rec.FullName,
		"full_name_ci": rec.FullNameCI,
		"age":          rec.Age,
		"email":        rec.Email,
		"email_ci":     rec.EmailCI,
		"phone":        rec.Phone,
		"stake":        rec.Stake,
		"stake_ci":     rec.StakeCI,
		"ward":         rec.Ward,
		"ward_ci":      rec.WardCI,
		"gender":       rec.Gender,
		"more_info":    rec.MoreInfo,
		"status":       rec.Status,
		"updated_at":   rec.UpdatedAt,
	}
	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Recommendation{}, err
	}
	return s.GetByID(ctx, id)
}

// SetStatus records a status change and re-stamps UpdatedAt.
// Transition validity is the caller's responsibility.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Recommendation, error) {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return models.Recommendation{}, err
	}
	return s.GetByID(ctx, id)
}

// SetLinkedApplication persists the link to the matched application
// and re-stamps UpdatedAt. Setting the same link twice is a no-op at
// the document level, so the link step is safe to re-run.
func (s *Store) SetLinkedApplication(ctx context.Context, id, appID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"linked_application_id": appID,
		"updated_at":            time.Now().UTC(),
	}})
	return err
}

// Delete removes a recommendation. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByLeader returns one leader's recommendations, most recently
// updated first (the ordering the leader's own list uses).
func (s *Store) ListByLeader(ctx context.Context, leaderID primitive.ObjectID) ([]models.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	return s.find(ctx, bson.M{"leader_id": leaderID}, opts)
}

// ListNonDraft returns every recommendation that has been submitted
// (or decided), newest first. Drafts stay private to their leader.
func (s *Store) ListNonDraft(ctx context.Context) ([]models.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, bson.M{"status": bson.M{"$ne": "draft"}}, opts)
}

// ListNonDraftByStake scopes ListNonDraft to one folded stake name.
func (s *Store) ListNonDraftByStake(ctx context.Context, stakeCI string) ([]models.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, bson.M{
		"status":   bson.M{"$ne": "draft"},
		"stake_ci": stakeCI,
	}, opts)
}

// FindByLeaderAndMatchKey returns the leader's recommendations in the
// given folded stake/ward, for the duplicate-recommendation guard.
func (s *Store) FindByLeaderAndMatchKey(ctx context.Context, leaderID primitive.ObjectID, stakeCI, wardCI string) ([]models.Recommendation, error) {
	return s.find(ctx, bson.M{
		"leader_id": leaderID,
		"stake_ci":  stakeCI,
		"ward_ci":   wardCI,
	}, nil)
}

// GetLinkedTo returns the recommendation linked to the given
// application, or mongo.ErrNoDocuments when none carries the link.
// The application side of the link is always derived through this
// lookup rather than stored.
func (s *Store) GetLinkedTo(ctx context.Context, appID primitive.ObjectID) (models.Recommendation, error) {
	var rec models.Recommendation
	err := s.c.FindOne(ctx, bson.M{"linked_application_id": appID}).Decode(&rec)
	if err != nil {
		return models.Recommendation{}, err
	}
	return rec, nil
}

// ExistsLinkedTo reports whether any recommendation already carries a
// link to the given application.
func (s *Store) ExistsLinkedTo(ctx context.Context, appID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"linked_application_id": appID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Recommendation, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.c.Find(ctx, filter, opts)
	} else {
		cur, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var recs []models.Recommendation
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
