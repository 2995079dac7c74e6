// internal/domain/roles/roles.go

// Package roles names the fixed role and leader-status sets. There is
// no role hierarchy: every permission check names the roles it allows
// explicitly.
package roles

// Role values stored on users and carried in the session.
const (
	Admin          = "admin"
	SessionLeader  = "session_leader"
	StakePresident = "stake_president"
	Bishop         = "bishop"
	Applicant      = "applicant"
)

// Leader status values. Only meaningful for leader roles; leaders
// start pending and gain full visibility once an admin approves them.
const (
	LeaderPending  = "pending"
	LeaderApproved = "approved"
)

// Valid reports whether role is one of the known role values.
func Valid(role string) bool {
	switch role {
	case Admin, SessionLeader, StakePresident, Bishop, Applicant:
		return true
	}
	return false
}

// IsLeader reports whether role is one of the leader roles gated by
// leader status.
func IsLeader(role string) bool {
	switch role {
	case SessionLeader, StakePresident, Bishop:
		return true
	}
	return false
}

// CanAuthorNotes reports whether role may create memos and comments.
// Session leaders and admins may only read them.
func CanAuthorNotes(role string) bool {
	return role == Bishop || role == StakePresident
}

// CanDecide reports whether role may move applications and
// recommendations to a terminal status. Bishops and stake presidents
// author recommendations and notes but never decide.
func CanDecide(role string) bool {
	return role == Admin || role == SessionLeader
}

// ValidLeaderStatus reports whether s is a known leader status.
func ValidLeaderStatus(s string) bool {
	return s == LeaderPending || s == LeaderApproved
}
