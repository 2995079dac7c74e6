// internal/domain/models/note.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memo is a reviewer note attached to an application. Only bishops
// and stake presidents may author memos, and only the author may edit
// or delete one afterwards.
type Memo struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicationID primitive.ObjectID `bson:"application_id" json:"application_id"`
	AuthorID      primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName    string             `bson:"author_name" json:"author_name"`
	AuthorRole    string             `bson:"author_role" json:"author_role"`
	Content       string             `bson:"content" json:"content"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Comment is a reviewer note attached to a recommendation. Same
// authorship and ownership rules as Memo.
type Comment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecommendationID primitive.ObjectID `bson:"recommendation_id" json:"recommendation_id"`
	AuthorID         primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName       string             `bson:"author_name" json:"author_name"`
	AuthorRole       string             `bson:"author_role" json:"author_role"`
	Content          string             `bson:"content" json:"content"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
