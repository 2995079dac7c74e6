// internal/domain/models/recommendation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation is a candidacy form submitted by a leader on behalf
// of a candidate (who may or may not have their own application). A
// leader may author many recommendations, but at most one per
// candidate.
//
// LinkedApplicationID is set when the reconciliation step finds
// exactly one application describing the same candidate. The link is
// stored only on this side; the application side is derived by lookup.
type Recommendation struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeaderID primitive.ObjectID `bson:"leader_id" json:"leader_id"`

	FullName   string `bson:"full_name" json:"full_name"`
	FullNameCI string `bson:"full_name_ci" json:"-"`
	Age        int    `bson:"age" json:"age"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"` // recommendations may omit email
	EmailCI    string `bson:"email_ci,omitempty" json:"-"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Stake      string `bson:"stake" json:"stake"`
	StakeCI    string `bson:"stake_ci" json:"-"`
	Ward       string `bson:"ward" json:"ward"`
	WardCI     string `bson:"ward_ci" json:"-"`
	Gender     string `bson:"gender,omitempty" json:"gender,omitempty"`
	MoreInfo   string `bson:"more_info,omitempty" json:"more_info,omitempty"`

	Status string `bson:"status" json:"status"` // draft | submitted | approved | rejected

	LinkedApplicationID *primitive.ObjectID `bson:"linked_application_id,omitempty" json:"linked_application_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
