// internal/app/store/applications/applicationstore.go
package applicationstore

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
	return &Store{c: db.Collection("applications")}
}

// fold refreshes the *_ci shadow fields from the display fields.
func fold(app *models.Application) {
	app.FullNameCI = text.Fold(app.FullName)
	app.EmailCI = text.Fold(app.Email)
	app.StakeCI = text.Fold(app.Stake)
	app.WardCI = text.Fold(app.Ward)
}

// Create inserts a new application, assigning ID, folded fields, and
// timestamps. The unique index on user_id enforces one application
// per applicant.
func (s *Store) Create(ctx context.Context, app models.Application) (models.Application, error) {
	now := time.Now().UTC()
	app.ID = primitive.NewObjectID()
	fold(&app)
	app.CreatedAt = now
	app.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Application, error) {
	var app models.Application
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		return models.Application{}, err
	}
	return app, nil
}

// GetByUserID returns the applicant's own application.
// mongo.ErrNoDocuments when the user has never submitted.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (models.Application, error) {
	var app models.Application
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&app)
	if err != nil {
		return models.Application{}, err
	}
	return app, nil
}

// Replace overwrites the mutable form fields and status of an
// existing application (the re-submit path), refreshing folded fields
// and UpdatedAt. Callers validate the status transition first.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, app models.Application) (models.Application, error) {
	fold(&app)
	app.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"full_name":    app.FullName,
		"full_name_ci": app.FullNameCI,
		"age":          app.Age,
		"email":        app.Email,
		"email_ci":     app.EmailCI,
		"phone":        app.Phone,
		"stake":        app.Stake,
		"stake_ci":     app.StakeCI,
		"ward":         app.Ward,
		"ward_ci":      app.WardCI,
		"gender":       app.Gender,
		"more_info":    app.MoreInfo,
		"status":       app.Status,
		"updated_at":   app.UpdatedAt,
	}
	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Application{}, err
	}
	return s.GetByID(ctx, id)
}

// SetStatus records a decision (or re-submit) and re-stamps
// UpdatedAt. Transition validity is the caller's responsibility.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Application, error) {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return models.Application{}, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes an application. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FindByMatchKey returns all applications whose folded
// (email, stake, ward) triple equals the given key values.
func (s *Store) FindByMatchKey(ctx context.Context, emailCI, stakeCI, wardCI string) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"email_ci": emailCI,
		"stake_ci": stakeCI,
		"ward_ci":  wardCI,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByStakeWard returns all applications in one folded stake/ward
// pair, for name-based matching when a recommendation has no email.
func (s *Store) FindByStakeWard(ctx context.Context, stakeCI, wardCI string) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, bson.M{"stake_ci": stakeCI, "ward_ci": wardCI})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAll returns every application, newest first, optionally
// filtered by status.
func (s *Store) ListAll(ctx context.Context, status string) ([]models.Application, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

// ListByStake returns applications scoped to one folded stake name,
// newest first. Used for bishop / stake president visibility.
func (s *Store) ListByStake(ctx context.Context, stakeCI, status string) ([]models.Application, error) {
	filter := bson.M{"stake_ci": stakeCI}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
