// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID           string
	Name         string
	Email        string
	Role         string
	LeaderStatus string
	Stake        string
	Ward         string
}

// FromModel builds a TestUser from a fixture user record.
func FromModel(u models.User) TestUser {
	return TestUser{
		ID:           u.ID.Hex(),
		Name:         u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		LeaderStatus: u.LeaderStatus,
		Stake:        u.Stake,
		Ward:         u.Ward,
	}
}

// AdminUser returns a TestUser with admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  roles.Admin,
	}
}

// ApplicantUser returns a TestUser with applicant role.
func ApplicantUser(stake, ward string) TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Applicant",
		Email: "applicant@test.com",
		Role:  roles.Applicant,
		Stake: stake,
		Ward:  ward,
	}
}

// LeaderUser returns a TestUser with the given leader role and status.
func LeaderUser(role, leaderStatus, stake, ward string) TestUser {
	return TestUser{
		ID:           primitive.NewObjectID().Hex(),
		Name:         "Test Leader",
		Email:        "leader@test.com",
		Role:         role,
		LeaderStatus: leaderStatus,
		Stake:        stake,
		Ward:         ward,
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the user
// directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		LeaderStatus: user.LeaderStatus,
		Stake:        user.Stake,
		Ward:         user.Ward,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}
