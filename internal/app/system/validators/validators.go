// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach
// JSON-Schema validators. On servers that don't support
// collMod/validators (e.g. some DocumentDB versions), we log and skip
// gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isUnsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("applications", applicationsSchema())
	ensure("recommendations", recommendationsSchema())
	ensure("memos", notesSchema("application_id"))
	ensure("comments", notesSchema("recommendation_id"))

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	exists, err := collectionExists(ctx, db, name)
	if err == nil && exists {
		return nil
	}
	if createErr := db.CreateCollection(ctx, name); createErr != nil {
		// Lost a race with a concurrent create; that's fine.
		var cmdErr mongo.CommandError
		if errors.As(createErr, &cmdErr) && cmdErr.Name == "NamespaceExists" {
			return nil
		}
		return createErr
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, coll string, schema bson.M) error {
	return db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: coll},
		{Key: "validator", Value: bson.M{"$jsonSchema": schema}},
		{Key: "validationLevel", Value: "moderate"},
	}).Err()
}

func isUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Name == "CommandNotFound" || cmdErr.Name == "NotImplemented" ||
			cmdErr.Code == 59 || cmdErr.Code == 238
	}
	return false
}

/* --------------------------- schemas --------------------------- */

func usersSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": []string{"email"},
		"properties": bson.M{
			"email": bson.M{"bsonType": "string"},
			"role": bson.M{
				"enum": []string{"admin", "session_leader", "stake_president", "bishop", "applicant"},
			},
			"leader_status": bson.M{
				"enum": []string{"pending", "approved"},
			},
		},
	}
}

func applicationsSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": []string{"user_id", "full_name", "status"},
		"properties": bson.M{
			"user_id":   bson.M{"bsonType": "objectId"},
			"full_name": bson.M{"bsonType": "string"},
			"age":       bson.M{"bsonType": "int", "minimum": 0, "maximum": 120},
			"status": bson.M{
				"enum": []string{"draft", "awaiting", "approved", "rejected"},
			},
		},
	}
}

func recommendationsSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": []string{"leader_id", "full_name", "status"},
		"properties": bson.M{
			"leader_id": bson.M{"bsonType": "objectId"},
			"full_name": bson.M{"bsonType": "string"},
			"age":       bson.M{"bsonType": "int", "minimum": 0, "maximum": 120},
			"status": bson.M{
				"enum": []string{"draft", "submitted", "approved", "rejected"},
			},
			"linked_application_id": bson.M{"bsonType": "objectId"},
		},
	}
}

func notesSchema(parentField string) bson.M {
	return bson.M{
		"bsonType": "object",
		"required": []string{parentField, "author_id", "content"},
		"properties": bson.M{
			parentField: bson.M{"bsonType": "objectId"},
			"author_id": bson.M{"bsonType": "objectId"},
			"content":   bson.M{"bsonType": "string"},
		},
	}
}
