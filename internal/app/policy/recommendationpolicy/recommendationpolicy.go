// Package recommendationpolicy provides authorization decisions for
// recommendations.
//
// Authorization rules:
//   - Any leader role may create recommendations, even while their
//     leader status is still pending
//   - Only the authoring leader may edit, cancel, or delete one, and
//     only while it is not yet decided
//   - Admins and approved session leaders see all submitted
//     recommendations and decide on them
//   - Approved bishops and stake presidents additionally see
//     submitted recommendations within their own stake
//   - Admins never create recommendations
package recommendationpolicy

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/text"
)

// CanCreate reports whether the identity may author a new
// recommendation. Ownership rights do not depend on approval.
func CanCreate(id authz.Identity) bool {
	return roles.IsLeader(id.Role)
}

// CanView reports whether the identity may read the given
// recommendation. Drafts are visible only to their author.
func CanView(id authz.Identity, rec models.Recommendation) bool {
	if rec.LeaderID == id.UserID && roles.IsLeader(id.Role) {
		return true
	}
	if rec.Status == "draft" {
		return false
	}
	switch {
	case id.Role == roles.Admin:
		return true
	case id.Role == roles.SessionLeader:
		return id.LeaderStatus == roles.LeaderApproved
	case id.Role == roles.Bishop, id.Role == roles.StakePresident:
		return id.LeaderStatus == roles.LeaderApproved && text.Fold(id.Stake) == rec.StakeCI
	}
	return false
}

// CanMutate reports whether the identity may edit, cancel, or delete
// the given recommendation: the authoring leader only, no role
// exception. Callers additionally run lifecycle.CheckMutable.
func CanMutate(id authz.Identity, rec models.Recommendation) bool {
	return roles.IsLeader(id.Role) && rec.LeaderID == id.UserID
}

// CanDecide reports whether the identity may set the recommendation's
// status to approved or rejected. Bishops and stake presidents author
// recommendations but never decide on them.
func CanDecide(id authz.Identity) bool {
	return id.CanDecide()
}
