// Package notepolicy provides authorization decisions for memos (on
// applications) and comments (on recommendations). The rules are
// identical for both, so one policy covers them.
//
// Authorization rules:
//   - Only approved bishops and stake presidents author notes
//   - Only the author edits or deletes a note, with no role
//     exception, not even admin
//   - Admins and approved leaders read notes; applicants never do
package notepolicy

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAuthor reports whether the identity may create a memo or comment.
func CanAuthor(id authz.Identity) bool {
	return id.CanAuthorNotes()
}

// CanMutate reports whether the identity may edit or delete the note
// with the given author. Strict ownership: authorID must equal the
// identity's user ID.
func CanMutate(id authz.Identity, authorID primitive.ObjectID) bool {
	return id.UserID == authorID
}

// CanRead reports whether the identity may read notes at all.
// Per-record visibility follows the parent record's policy; this
// gates the note surface itself.
func CanRead(id authz.Identity) bool {
	return id.IsAdmin() || id.IsApprovedLeader()
}
