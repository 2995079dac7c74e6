package recommendationstore_test

import (
	"testing"

	recommendationstore "github.com/dalemusser/candidacyhub/internal/app/store/recommendations"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *recommendationstore.Store {
	t.Helper()
	return recommendationstore.New(testutil.SetupTestDB(t))
}

func create(t *testing.T, store *recommendationstore.Store, leaderID primitive.ObjectID, name, stake, status string) models.Recommendation {
	t.Helper()
	ctx := testutil.TestContext(t)
	rec, err := store.Create(ctx, models.Recommendation{
		LeaderID: leaderID,
		FullName: name,
		Age:      20,
		Stake:    stake,
		Ward:     "w1",
		Status:   status,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return rec
}

func TestSetLinkedApplication(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	rec := create(t, store, primitive.NewObjectID(), "Ann Lee", "s1", lifecycle.RecSubmitted)
	appID := primitive.NewObjectID()

	if err := store.SetLinkedApplication(ctx, rec.ID, appID); err != nil {
		t.Fatalf("SetLinkedApplication failed: %v", err)
	}

	got, err := store.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LinkedApplicationID == nil || *got.LinkedApplicationID != appID {
		t.Error("link not persisted")
	}

	linked, err := store.ExistsLinkedTo(ctx, appID)
	if err != nil {
		t.Fatalf("ExistsLinkedTo failed: %v", err)
	}
	if !linked {
		t.Error("ExistsLinkedTo should see the persisted link")
	}

	byApp, err := store.GetLinkedTo(ctx, appID)
	if err != nil {
		t.Fatalf("GetLinkedTo failed: %v", err)
	}
	if byApp.ID != rec.ID {
		t.Error("GetLinkedTo returned the wrong recommendation")
	}
}

func TestExistsLinkedTo_NoLink(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	create(t, store, primitive.NewObjectID(), "Ann Lee", "s1", lifecycle.RecSubmitted)

	linked, err := store.ExistsLinkedTo(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ExistsLinkedTo failed: %v", err)
	}
	if linked {
		t.Error("unlinked application should report no link")
	}
}

func TestListNonDraft_ExcludesDrafts(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	leaderID := primitive.NewObjectID()
	create(t, store, leaderID, "Ann Lee", "s1", lifecycle.RecDraft)
	create(t, store, leaderID, "Bea Cruz", "s1", lifecycle.RecSubmitted)
	create(t, store, leaderID, "Cam Diaz", "s1", lifecycle.RecApproved)

	got, err := store.ListNonDraft(ctx)
	if err != nil {
		t.Fatalf("ListNonDraft failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d recommendations, want 2 (drafts excluded)", len(got))
	}
	for _, rec := range got {
		if rec.Status == lifecycle.RecDraft {
			t.Error("draft leaked into the non-draft list")
		}
	}
}

func TestListNonDraftByStake(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	leaderID := primitive.NewObjectID()
	create(t, store, leaderID, "Ann Lee", "Provo Stake", lifecycle.RecSubmitted)
	create(t, store, leaderID, "Bea Cruz", "Orem Stake", lifecycle.RecSubmitted)

	got, err := store.ListNonDraftByStake(ctx, "provo stake")
	if err != nil {
		t.Fatalf("ListNonDraftByStake failed: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ann Lee" {
		t.Errorf("got %d recommendations, want only the Provo one", len(got))
	}
}

func TestListByLeader_IncludesDrafts(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	mine := primitive.NewObjectID()
	create(t, store, mine, "Ann Lee", "s1", lifecycle.RecDraft)
	create(t, store, mine, "Bea Cruz", "s1", lifecycle.RecSubmitted)
	create(t, store, primitive.NewObjectID(), "Cam Diaz", "s1", lifecycle.RecSubmitted)

	got, err := store.ListByLeader(ctx, mine)
	if err != nil {
		t.Fatalf("ListByLeader failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d recommendations, want the leader's own 2 including the draft", len(got))
	}
}

func TestFindByLeaderAndMatchKey(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	leaderID := primitive.NewObjectID()
	create(t, store, leaderID, "Ann Lee", "Provo Stake", lifecycle.RecSubmitted)
	create(t, store, leaderID, "Bea Cruz", "Orem Stake", lifecycle.RecSubmitted)

	got, err := store.FindByLeaderAndMatchKey(ctx, leaderID, "provo stake", "w1")
	if err != nil {
		t.Fatalf("FindByLeaderAndMatchKey failed: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ann Lee" {
		t.Errorf("got %d recommendations, want the leader's Provo one", len(got))
	}
}
