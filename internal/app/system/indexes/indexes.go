// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureApplications(ctx, db); err != nil {
		problems = append(problems, "applications: "+err.Error())
	}
	if err := ensureRecommendations(ctx, db); err != nil {
		problems = append(problems, "recommendations: "+err.Error())
	}
	if err := ensureMemos(ctx, db); err != nil {
		problems = append(problems, "memos: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, idx []mongo.IndexModel) error {
	if len(idx) == 0 {
		return nil
	}
	names, err := db.Collection(coll).Indexes().CreateMany(ctx, idx)
	if err != nil {
		return err
	}
	zap.L().Info("ensured indexes",
		zap.String("collection", coll),
		zap.Strings("indexes", names))
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "leader_status", Value: 1}},
			Options: options.Index().SetName("role_leader_status"),
		},
	})
}

func ensureApplications(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "applications", []mongo.IndexModel{
		{
			// One application per applicant (upsert-on-submit).
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("uniq_user").SetUnique(true),
		},
		{
			// The reconciliation match key.
			Keys: bson.D{
				{Key: "email_ci", Value: 1},
				{Key: "stake_ci", Value: 1},
				{Key: "ward_ci", Value: 1},
			},
			Options: options.Index().SetName("match_key"),
		},
		{
			Keys:    bson.D{{Key: "stake_ci", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("stake_created"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	})
}

func ensureRecommendations(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "recommendations", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "leader_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("leader_updated"),
		},
		{
			Keys: bson.D{
				{Key: "email_ci", Value: 1},
				{Key: "stake_ci", Value: 1},
				{Key: "ward_ci", Value: 1},
			},
			Options: options.Index().SetName("match_key"),
		},
		{
			// Duplicate guard lookup: does any recommendation already
			// link to a given application?
			Keys:    bson.D{{Key: "linked_application_id", Value: 1}},
			Options: options.Index().SetName("linked_application").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created"),
		},
	})
}

func ensureMemos(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "memos", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "application_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("application_created"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "oauth_states", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetName("uniq_state").SetUnique(true),
		},
		{
			// TTL cleanup for abandoned flows.
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expire").SetExpireAfterSeconds(0),
		},
	})
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "comments", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recommendation_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("recommendation_created"),
		},
	})
}
