// internal/app/store/memos/memostore.go
package memostore

import (
	"context"
	"time"

	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memos")}
}

func (s *Store) Create(ctx context.Context, memo models.Memo) (models.Memo, error) {
	now := time.Now().UTC()
	memo.ID = primitive.NewObjectID()
	memo.CreatedAt = now
	memo.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, memo); err != nil {
		return models.Memo{}, err
	}
	return memo, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Memo, error) {
	var memo models.Memo
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&memo)
	if err != nil {
		return models.Memo{}, err
	}
	return memo, nil
}

// ListByApplication returns an application's memos, oldest first.
func (s *Store) ListByApplication(ctx context.Context, appID primitive.ObjectID) ([]models.Memo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"application_id": appID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var memos []models.Memo
	if err := cur.All(ctx, &memos); err != nil {
		return nil, err
	}
	return memos, nil
}

// UpdateContent replaces the memo body and re-stamps UpdatedAt.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (models.Memo, error) {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"content":    content,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return models.Memo{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
