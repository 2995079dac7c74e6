// Package queuepolicy decides what slice of the merged review queue
// an identity may see.
//
// Authorization rules:
//   - Admins and approved session leaders see the full queue
//   - Approved bishops and stake presidents see their own stake's
//     records plus their own recommendations
//   - Pending leaders see only their own recommendations
//   - Applicants and profile-incomplete users see nothing
package queuepolicy

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scope describes the records the aggregator should fetch for one
// viewer.
type Scope struct {
	CanView bool
	// All: fetch every application and every submitted
	// recommendation.
	All bool
	// StakeCI: fetch records in one folded stake, plus the viewer's
	// own recommendations.
	StakeCI string
	// SelfOnly: fetch only recommendations authored by LeaderID.
	SelfOnly bool
	// LeaderID is set for leader viewers so their own drafts and
	// submissions are always included.
	LeaderID primitive.ObjectID
}

// ScopeFor determines the queue scope for an identity.
func ScopeFor(id authz.Identity) Scope {
	switch {
	case id.Role == roles.Admin:
		return Scope{CanView: true, All: true}
	case id.Role == roles.SessionLeader && id.LeaderStatus == roles.LeaderApproved:
		return Scope{CanView: true, All: true, LeaderID: id.UserID}
	case (id.Role == roles.Bishop || id.Role == roles.StakePresident) && id.LeaderStatus == roles.LeaderApproved:
		return Scope{CanView: true, StakeCI: text.Fold(id.Stake), LeaderID: id.UserID}
	case roles.IsLeader(id.Role):
		// Pending leaders: own recommendations only, never another
		// leader's data.
		return Scope{CanView: true, SelfOnly: true, LeaderID: id.UserID}
	}
	return Scope{}
}
