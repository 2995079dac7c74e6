// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account in the system: admins, leaders
// (session leaders, stake presidents, bishops), and applicants.
//
// NOTE:
//   - Role is empty until the user completes their profile.
//   - LeaderStatus is only meaningful for leader roles; it stays empty
//     for admins and applicants.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Stake      string             `bson:"stake,omitempty" json:"stake,omitempty"`
	Ward       string             `bson:"ward,omitempty" json:"ward,omitempty"`

	AuthMethod   string `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Role         string `bson:"role,omitempty" json:"role,omitempty"`                   // admin | session_leader | stake_president | bishop | applicant
	LeaderStatus string `bson:"leader_status,omitempty" json:"leader_status,omitempty"` // pending | approved (leader roles only)

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
