package recommendationpolicy_test

import (
	"testing"

	"github.com/dalemusser/candidacyhub/internal/app/policy/recommendationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func identity(role, leaderStatus, stake string) authz.Identity {
	return authz.Identity{
		UserID:       primitive.NewObjectID(),
		Role:         role,
		LeaderStatus: leaderStatus,
		Stake:        stake,
	}
}

func recBy(leaderID primitive.ObjectID, stake, status string) models.Recommendation {
	return models.Recommendation{
		ID:       primitive.NewObjectID(),
		LeaderID: leaderID,
		Stake:    stake,
		StakeCI:  text.Fold(stake),
		Status:   status,
	}
}

func TestCanCreate(t *testing.T) {
	for _, role := range []string{roles.SessionLeader, roles.Bishop, roles.StakePresident} {
		// Pending leaders may author their own recommendations.
		if !recommendationpolicy.CanCreate(identity(role, roles.LeaderPending, "s1")) {
			t.Errorf("pending %s should be able to create", role)
		}
	}
	if recommendationpolicy.CanCreate(identity(roles.Admin, "", "")) {
		t.Error("admins never author recommendations")
	}
	if recommendationpolicy.CanCreate(identity(roles.Applicant, "", "")) {
		t.Error("applicants never author recommendations")
	}
}

func TestCanView_DraftsAuthorOnly(t *testing.T) {
	author := identity(roles.Bishop, roles.LeaderPending, "s1")
	draft := recBy(author.UserID, "s1", lifecycle.RecDraft)

	if !recommendationpolicy.CanView(author, draft) {
		t.Error("author should see their own draft")
	}
	if recommendationpolicy.CanView(identity(roles.Admin, "", ""), draft) {
		t.Error("drafts are invisible to everyone but the author, admin included")
	}
	if recommendationpolicy.CanView(identity(roles.Bishop, roles.LeaderApproved, "s1"), draft) {
		t.Error("another leader in the stake must not see a draft")
	}
}

func TestCanView_Submitted(t *testing.T) {
	author := identity(roles.Bishop, roles.LeaderApproved, "Provo Stake")
	rec := recBy(author.UserID, "Provo Stake", lifecycle.RecSubmitted)

	cases := []struct {
		name string
		id   authz.Identity
		want bool
	}{
		{"admin", identity(roles.Admin, "", ""), true},
		{"approved session leader", identity(roles.SessionLeader, roles.LeaderApproved, ""), true},
		{"pending session leader", identity(roles.SessionLeader, roles.LeaderPending, ""), false},
		{"approved bishop same stake", identity(roles.Bishop, roles.LeaderApproved, "provo stake"), true},
		{"approved bishop other stake", identity(roles.Bishop, roles.LeaderApproved, "Orem Stake"), false},
		{"applicant", identity(roles.Applicant, "", ""), false},
	}
	for _, tc := range cases {
		if got := recommendationpolicy.CanView(tc.id, rec); got != tc.want {
			t.Errorf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanMutate_AuthorOnly(t *testing.T) {
	author := identity(roles.StakePresident, roles.LeaderPending, "s1")
	rec := recBy(author.UserID, "s1", lifecycle.RecSubmitted)

	if !recommendationpolicy.CanMutate(author, rec) {
		t.Error("author should be able to mutate, even while pending")
	}
	if recommendationpolicy.CanMutate(identity(roles.Admin, "", ""), rec) {
		t.Error("admin must not edit another leader's recommendation")
	}
	if recommendationpolicy.CanMutate(identity(roles.Bishop, roles.LeaderApproved, "s1"), rec) {
		t.Error("another leader must not mutate the recommendation")
	}
}

func TestCanDecide_BishopsNeverDecide(t *testing.T) {
	if recommendationpolicy.CanDecide(identity(roles.Bishop, roles.LeaderApproved, "s1")) {
		t.Error("bishops author recommendations but never decide")
	}
	if recommendationpolicy.CanDecide(identity(roles.StakePresident, roles.LeaderApproved, "s1")) {
		t.Error("stake presidents author recommendations but never decide")
	}
	if !recommendationpolicy.CanDecide(identity(roles.SessionLeader, roles.LeaderApproved, "")) {
		t.Error("approved session leaders decide")
	}
	if !recommendationpolicy.CanDecide(identity(roles.Admin, "", "")) {
		t.Error("admins decide")
	}
}
