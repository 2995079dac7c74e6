// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application is a candidacy form submitted by an applicant on their
// own behalf. Exactly one application exists per user; re-submitting
// updates the existing record (while it is not yet decided).
//
// The *_ci shadow fields hold folded (lowercase, trimmed,
// diacritics-stripped) copies used for case-insensitive matching
// against recommendations.
type Application struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	FullName   string `bson:"full_name" json:"full_name"`
	FullNameCI string `bson:"full_name_ci" json:"-"`
	Age        int    `bson:"age" json:"age"`
	Email      string `bson:"email" json:"email"`
	EmailCI    string `bson:"email_ci" json:"-"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Stake      string `bson:"stake" json:"stake"`
	StakeCI    string `bson:"stake_ci" json:"-"`
	Ward       string `bson:"ward" json:"ward"`
	WardCI     string `bson:"ward_ci" json:"-"`
	Gender     string `bson:"gender,omitempty" json:"gender,omitempty"`
	MoreInfo   string `bson:"more_info,omitempty" json:"more_info,omitempty"`

	Status string `bson:"status" json:"status"` // draft | awaiting | approved | rejected

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
