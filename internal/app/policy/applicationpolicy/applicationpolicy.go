// Package applicationpolicy provides authorization decisions for
// applications.
//
// Authorization rules:
//   - Applicants create/edit/delete only their own application, and
//     only while it is not yet decided
//   - Admins and approved session leaders see every application and
//     decide on them
//   - Approved bishops and stake presidents see applications within
//     their own stake but never decide
//   - Pending leaders see no applications at all
//
// Every function is pure: identity and resource state in, boolean
// out. Terminal-status immutability is enforced separately by the
// lifecycle package; these decisions are about who, not about state
// transitions.
package applicationpolicy

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/text"
)

// CanSubmit reports whether the identity may create or re-submit an
// application of their own.
func CanSubmit(id authz.Identity) bool {
	return id.Role == roles.Applicant
}

// CanView reports whether the identity may read the given application.
func CanView(id authz.Identity, app models.Application) bool {
	switch {
	case id.Role == roles.Admin:
		return true
	case id.Role == roles.Applicant:
		return app.UserID == id.UserID
	case id.Role == roles.SessionLeader:
		return id.LeaderStatus == roles.LeaderApproved
	case id.Role == roles.Bishop, id.Role == roles.StakePresident:
		return id.LeaderStatus == roles.LeaderApproved && text.Fold(id.Stake) == app.StakeCI
	}
	return false
}

// CanMutate reports whether the identity may edit or delete the given
// application: the owning applicant only. Callers additionally run
// lifecycle.CheckMutable.
func CanMutate(id authz.Identity, app models.Application) bool {
	return id.Role == roles.Applicant && app.UserID == id.UserID
}

// CanDecide reports whether the identity may set the application's
// status to approved or rejected.
func CanDecide(id authz.Identity) bool {
	return id.CanDecide()
}

// ListScope describes which applications the identity may list.
type ListScope struct {
	CanList bool
	// All means every application is visible (admin, approved
	// session leader).
	All bool
	// StakeCI restricts visibility to one folded stake name
	// (approved bishop / stake president).
	StakeCI string
	// SelfOnly restricts visibility to the identity's own
	// application (applicant).
	SelfOnly bool
}

// ScopeForList determines what scope of applications the identity can
// list. Pending leaders get no scope.
func ScopeForList(id authz.Identity) ListScope {
	switch {
	case id.Role == roles.Admin:
		return ListScope{CanList: true, All: true}
	case id.Role == roles.SessionLeader && id.LeaderStatus == roles.LeaderApproved:
		return ListScope{CanList: true, All: true}
	case (id.Role == roles.Bishop || id.Role == roles.StakePresident) && id.LeaderStatus == roles.LeaderApproved:
		return ListScope{CanList: true, StakeCI: text.Fold(id.Stake)}
	case id.Role == roles.Applicant:
		return ListScope{CanList: true, SelfOnly: true}
	}
	return ListScope{}
}
