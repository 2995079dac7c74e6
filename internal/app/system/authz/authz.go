// internal/app/system/authz/authz.go

// Package authz turns the session user into the Identity value the
// policy packages decide on. Policies never see http.Request; they
// take an Identity and the resource state, and return plain booleans.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the per-request principal the authorization engine
// evaluates: who is acting, with which role, and (for leaders)
// whether an admin has approved them.
type Identity struct {
	UserID       primitive.ObjectID
	Name         string
	Role         string
	LeaderStatus string
	Stake        string
	Ward         string
}

// FromRequest extracts the Identity of the signed-in user. If no user
// is present or the stored ID is malformed, ok is false and the
// identity is zero, so callers fail closed.
func FromRequest(r *http.Request) (Identity, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return Identity{}, false
	}
	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		// Malformed user ID in session - fail closed for security.
		return Identity{}, false
	}
	return Identity{
		UserID:       uid,
		Name:         u.Name,
		Role:         strings.ToLower(u.Role),
		LeaderStatus: strings.ToLower(u.LeaderStatus),
		Stake:        u.Stake,
		Ward:         u.Ward,
	}, true
}

// IsAdmin reports whether the identity is an admin.
func (id Identity) IsAdmin() bool {
	return id.Role == roles.Admin
}

// IsLeader reports whether the identity holds any leader role,
// regardless of approval.
func (id Identity) IsLeader() bool {
	return roles.IsLeader(id.Role)
}

// IsApprovedLeader reports whether the identity holds a leader role
// an admin has approved. Pending leaders keep ownership rights over
// their own recommendations but gain no wider visibility.
func (id Identity) IsApprovedLeader() bool {
	return roles.IsLeader(id.Role) && id.LeaderStatus == roles.LeaderApproved
}

// CanDecide reports whether the identity may move records to a
// terminal status. Session leaders must be approved; bishops and
// stake presidents never decide.
func (id Identity) CanDecide() bool {
	if id.Role == roles.Admin {
		return true
	}
	return id.Role == roles.SessionLeader && id.LeaderStatus == roles.LeaderApproved
}

// CanAuthorNotes reports whether the identity may create memos and
// comments: bishops and stake presidents only, once approved.
func (id Identity) CanAuthorNotes() bool {
	return roles.CanAuthorNotes(id.Role) && id.LeaderStatus == roles.LeaderApproved
}
