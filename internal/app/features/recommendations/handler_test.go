package recommendations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/candidacyhub/internal/app/features/recommendations"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
	"github.com/dalemusser/candidacyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*recommendations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return recommendations.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func jsonRequest(method, target, body string, user testutil.TestUser) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(req, user)
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error envelope: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Kind
}

const validForm = `{
	"full_name": "Ann Lee",
	"age": 20,
	"email": "ann@x.com",
	"stake": "Provo Stake",
	"ward": "Oak Hills",
	"status": "submitted"
}`

func TestHandleCreate_PendingLeaderMayAuthor(t *testing.T) {
	h, _ := newHandler(t)
	bishop := testutil.LeaderUser(roles.Bishop, roles.LeaderPending, "Provo Stake", "Oak Hills")

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, jsonRequest("POST", "/recommendations", validForm, bishop))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Status   string `json:"status"`
		LeaderID string `json:"leader_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.Status != lifecycle.RecSubmitted || got.LeaderID != bishop.ID {
		t.Errorf("created = %+v", got)
	}
}

func TestHandleCreate_NonLeadersForbidden(t *testing.T) {
	h, _ := newHandler(t)

	for _, u := range []testutil.TestUser{
		testutil.AdminUser(),
		testutil.ApplicantUser("s1", "w1"),
	} {
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, jsonRequest("POST", "/recommendations", validForm, u))
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s create = %d, want 403", u.Role, rec.Code)
		}
	}
}

func TestHandleCreate_LinksToMatchingApplication(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	bishop := testutil.LeaderUser(roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, jsonRequest("POST", "/recommendations", validForm, bishop))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		LinkedApplicationID string `json:"linked_application_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.LinkedApplicationID != app.ID.Hex() {
		t.Errorf("linked_application_id = %q, want %s", got.LinkedApplicationID, app.ID.Hex())
	}
}

func TestHandleCreate_AmbiguousMatchStaysUnlinked(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	bishop := testutil.LeaderUser(roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")

	noEmail := strings.Replace(validForm, `"email": "ann@x.com",`, "", 1)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, jsonRequest("POST", "/recommendations", noEmail, bishop))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		LinkedApplicationID *string `json:"linked_application_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.LinkedApplicationID != nil {
		t.Error("ambiguous match must leave the recommendation unlinked")
	}
}

func TestHandleCreate_DuplicateBySameLeader(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")
	fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, jsonRequest("POST", "/recommendations", validForm, testutil.FromModel(leader)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if kind := errorKind(t, rec); kind != "duplicate_recommendation" {
		t.Errorf("kind = %q, want duplicate_recommendation", kind)
	}
}

func TestHandleCreate_DuplicateViaExistingLink(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	other := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)
	_, err := fx.DB().Collection("recommendations").UpdateByID(ctx, other.ID,
		map[string]any{"$set": map[string]any{"linked_application_id": app.ID}})
	if err != nil {
		t.Fatalf("linking fixture failed: %v", err)
	}

	// A different leader recommending the same candidate.
	bishop := testutil.LeaderUser(roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, jsonRequest("POST", "/recommendations", validForm, bishop))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if kind := errorKind(t, rec); kind != "duplicate_recommendation" {
		t.Errorf("kind = %q, want duplicate_recommendation", kind)
	}
}

func TestHandleStatus_AuthorCancelsSubmission(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderPending, "s1", "w1")
	sub := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "s1", "w1", lifecycle.RecSubmitted)

	req := jsonRequest("POST", "/recommendations/"+sub.ID.Hex()+"/status", `{"status":"draft"}`, testutil.FromModel(leader))
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("cancel = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got.Status != lifecycle.RecDraft {
		t.Errorf("status after cancel = %s", rec.Body.String())
	}
}

func TestHandleStatus_AuthorCannotDecide(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "s1", "w1")
	sub := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "s1", "w1", lifecycle.RecSubmitted)

	req := jsonRequest("POST", "/recommendations/"+sub.ID.Hex()+"/status", `{"status":"approved"}`, testutil.FromModel(leader))
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("author deciding own recommendation = %d, want 403", rec.Code)
	}
}

func TestHandleStatus_AdminDecides(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	sub := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "s1", "w1", lifecycle.RecSubmitted)

	req := jsonRequest("POST", "/recommendations/"+sub.ID.Hex()+"/status", `{"status":"rejected"}`, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("decision = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleStatus_DraftCannotBeDecided(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	draft := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "s1", "w1", lifecycle.RecDraft)

	req := jsonRequest("POST", "/recommendations/"+draft.ID.Hex()+"/status", `{"status":"approved"}`, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", draft.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "invalid_transition" {
		t.Errorf("kind = %q, want invalid_transition", kind)
	}
}

func TestHandleUpdate_DecidedRecommendationImmutable(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")
	decided := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecApproved)

	req := jsonRequest("PUT", "/recommendations/"+decided.ID.Hex(), validForm, testutil.FromModel(leader))
	req = testutil.WithChiURLParam(req, "id", decided.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "immutable_record" {
		t.Errorf("kind = %q, want immutable_record", kind)
	}
}

func TestHandleUpdate_OnlyAuthorEdits(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")
	sub := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	req := jsonRequest("PUT", "/recommendations/"+sub.ID.Hex(), validForm, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("admin edit = %d, want 403", rec.Code)
	}
}

func TestHandleUpdate_DuplicateGuardOnRetarget(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	// Ann is already recommended: another leader's recommendation is
	// linked to her application.
	app := fx.CreateApplication(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.AppAwaiting)
	other := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)
	if _, err := fx.DB().Collection("recommendations").UpdateByID(ctx, other.ID,
		map[string]any{"$set": map[string]any{"linked_application_id": app.ID}}); err != nil {
		t.Fatalf("linking fixture failed: %v", err)
	}

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")
	mine := fx.CreateRecommendation(ctx, leader.ID, "Cam Diaz", "cam@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	// Editing the unlinked recommendation onto Ann must hit the same
	// guard the create path applies.
	req := jsonRequest("PUT", "/recommendations/"+mine.ID.Hex(), validForm, testutil.FromModel(leader))
	req = testutil.WithChiURLParam(req, "id", mine.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("retarget onto recommended candidate = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if kind := errorKind(t, rec); kind != "duplicate_recommendation" {
		t.Errorf("kind = %q, want duplicate_recommendation", kind)
	}
}

func TestHandleUpdate_SameCandidateEditDoesNotSelfCollide(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "Provo Stake", "Oak Hills")
	mine := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecSubmitted)

	req := jsonRequest("PUT", "/recommendations/"+mine.ID.Hex(), validForm, testutil.FromModel(leader))
	req = testutil.WithChiURLParam(req, "id", mine.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("editing own record with unchanged candidate = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleView_DraftHiddenFromOthers(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderPending, "Provo Stake", "Oak Hills")
	draft := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "Provo Stake", "Oak Hills", lifecycle.RecDraft)

	view := func(u testutil.TestUser) int {
		req := testutil.NewAuthenticatedRequest("GET", "/recommendations/"+draft.ID.Hex(), u)
		req = testutil.WithChiURLParam(req, "id", draft.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleView(rec, req)
		return rec.Code
	}

	if got := view(testutil.FromModel(leader)); got != http.StatusOK {
		t.Errorf("author view = %d, want 200", got)
	}
	if got := view(testutil.AdminUser()); got != http.StatusForbidden {
		t.Errorf("admin view of a draft = %d, want 403", got)
	}
}

func TestHandleDelete_AuthorOnly(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	leader := fx.CreateUser(ctx, "Bea Bishop", "bea@x.com", roles.Bishop, roles.LeaderApproved, "s1", "w1")
	sub := fx.CreateRecommendation(ctx, leader.ID, "Ann Lee", "ann@x.com", "s1", "w1", lifecycle.RecSubmitted)

	del := func(u testutil.TestUser) int {
		req := testutil.NewAuthenticatedRequest("DELETE", "/recommendations/"+sub.ID.Hex(), u)
		req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleDelete(rec, req)
		return rec.Code
	}

	if got := del(testutil.AdminUser()); got != http.StatusForbidden {
		t.Errorf("admin delete = %d, want 403", got)
	}
	if got := del(testutil.FromModel(leader)); got != http.StatusNoContent {
		t.Errorf("author delete = %d, want 204", got)
	}
}

func TestComments_SameRulesAsMemos(t *testing.T) {
	h, fx := newHandler(t)
	ctx := testutil.TestContext(t)

	sub := fx.CreateRecommendation(ctx, primitive.NewObjectID(), "Ann Lee", "ann@x.com", "Provo Stake", "w1", lifecycle.RecSubmitted)

	createComment := func(u testutil.TestUser) *httptest.ResponseRecorder {
		req := jsonRequest("POST", "/recommendations/"+sub.ID.Hex()+"/comments", `{"content":"concur"}`, u)
		req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleCreateComment(rec, req)
		return rec
	}

	stakePresident := testutil.LeaderUser(roles.StakePresident, roles.LeaderApproved, "Provo Stake", "w1")
	if rec := createComment(stakePresident); rec.Code != http.StatusCreated {
		t.Fatalf("stake president comment = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if rec := createComment(testutil.AdminUser()); rec.Code != http.StatusForbidden {
		t.Errorf("admin comment = %d, want 403", rec.Code)
	}
}
