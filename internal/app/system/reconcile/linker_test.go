package reconcile_test

import (
	"testing"

	applicationstore "github.com/dalemusser/candidacyhub/internal/app/store/applications"
	recommendationstore "github.com/dalemusser/candidacyhub/internal/app/store/recommendations"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/reconcile"
	"github.com/dalemusser/candidacyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newLinker(t *testing.T) (*reconcile.Linker, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	apps := applicationstore.New(db)
	recs := recommendationstore.New(db)
	return reconcile.NewLinker(apps, recs, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestLink_ExactlyOneMatch(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	rec := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "ANN LEE", "Ann@X.com", "provo stake", "OAK HILLS", lifecycle.RecSubmitted)

	linkedID, err := linker.Link(ctx, rec)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linkedID == nil || *linkedID != app.ID {
		t.Fatalf("linkedID = %v, want %s", linkedID, app.ID.Hex())
	}

	stored, err := recommendationstore.New(fx.DB()).GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.LinkedApplicationID == nil || *stored.LinkedApplicationID != app.ID {
		t.Error("link was not persisted on the recommendation side")
	}
}

func TestLink_NoMatchLeavesUnlinked(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	rec := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Bea Cruz", "bea@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	linkedID, err := linker.Link(ctx, rec)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linkedID != nil {
		t.Error("non-matching recommendation must stay unlinked")
	}
}

func TestLink_AmbiguousLeavesUnlinked(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	// Two email-less applications with the same candidate name.
	fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	rec := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	linkedID, err := linker.Link(ctx, rec)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linkedID != nil {
		t.Error("an ambiguous match must not link")
	}
}

func TestLink_IdempotentOnLinkedRecommendation(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	rec := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)
	rec.LinkedApplicationID = &app.ID

	linkedID, err := linker.Link(ctx, rec)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linkedID == nil || *linkedID != app.ID {
		t.Error("re-running Link on a linked recommendation should return the existing link")
	}
}

func TestLink_NameFallbackWhenRecommendationOmitsEmail(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	rec := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "ann lee", "", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	linkedID, err := linker.Link(ctx, rec)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linkedID == nil || *linkedID != app.ID {
		t.Error("name fallback should link when the recommendation has no email")
	}
}

func TestCheckDuplicate_SameLeaderSameCandidate(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	leaderID := primitive.NewObjectID()
	fx.CreateRecommendation(ctx, leaderID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	key := reconcile.KeyOf("Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills")
	err := linker.CheckDuplicate(ctx, leaderID, key)
	if apperrors.KindOf(err) != apperrors.KindDuplicateRecommendation {
		t.Errorf("got %v, want duplicate recommendation", err)
	}
}

func TestCheckDuplicate_OtherLeaderAlreadyLinked(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	otherLeader := primitive.NewObjectID()
	rec := fx.CreateRecommendation(ctx, otherLeader, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)
	recs := recommendationstore.New(fx.DB())
	if err := recs.SetLinkedApplication(ctx, rec.ID, app.ID); err != nil {
		t.Fatalf("SetLinkedApplication failed: %v", err)
	}

	key := reconcile.KeyOf("Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills")
	err := linker.CheckDuplicate(ctx, primitive.NewObjectID(), key)
	if apperrors.KindOf(err) != apperrors.KindDuplicateRecommendation {
		t.Errorf("got %v, want duplicate recommendation via existing link", err)
	}
}

func TestCheckDuplicateExcluding_IgnoresRecordUnderEdit(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	leaderID := primitive.NewObjectID()
	mine := fx.CreateRecommendation(ctx, leaderID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)
	key := reconcile.KeyOf("Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills")

	// The record being edited does not collide with itself.
	if err := linker.CheckDuplicateExcluding(ctx, leaderID, key, mine.ID); err != nil {
		t.Errorf("excluded record tripped the guard: %v", err)
	}

	// A second record by the same leader still does.
	err := linker.CheckDuplicateExcluding(ctx, leaderID, key, primitive.NewObjectID())
	if apperrors.KindOf(err) != apperrors.KindDuplicateRecommendation {
		t.Errorf("got %v, want duplicate recommendation", err)
	}
}

func TestCheckDuplicate_DistinctCandidateAllowed(t *testing.T) {
	linker, fx := newLinker(t)
	ctx := testutil.TestContext(t)

	leaderID := primitive.NewObjectID()
	fx.CreateRecommendation(ctx, leaderID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	key := reconcile.KeyOf("Bea Cruz", "bea@x.com", "Provo Stake", "Oak Hills")
	if err := linker.CheckDuplicate(ctx, leaderID, key); err != nil {
		t.Errorf("a different candidate should not trip the duplicate guard: %v", err)
	}
}
