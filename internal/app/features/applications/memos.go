// internal/app/features/applications/memos.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/applicationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/policy/notepolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// Memos are reviewer notes on an application. Bishops and stake
// presidents author them; admins and approved leaders read them; only
// the author may edit or delete one, with no admin exception.

// HandleCreateMemo adds a memo to an application.
//
// Route: POST /applications/{id}/memos
func (h *Handler) HandleCreateMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, ok2 := h.fetchApp(ctx, w, r)
	if !ok2 {
		return
	}
	if !applicationpolicy.CanView(id, app) || !notepolicy.CanAuthor(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to add memos to this application"))
		return
	}

	var form memoForm
	if err := decodeNoteJSON(w, r, &form); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if err := form.validate(); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	memo, err := h.Memos.Create(ctx, models.Memo{
		ApplicationID: app.ID,
		AuthorID:      id.UserID,
		AuthorName:    id.Name,
		AuthorRole:    id.Role,
		Content:       form.Content,
	})
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("memo created",
		zap.String("memo_id", memo.ID.Hex()),
		zap.String("application_id", app.ID.Hex()))
	apierr.WriteJSON(w, http.StatusCreated, memo)
}

// HandleListMemos returns an application's memos, oldest first.
//
// Route: GET /applications/{id}/memos
func (h *Handler) HandleListMemos(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, ok2 := h.fetchApp(ctx, w, r)
	if !ok2 {
		return
	}
	if !applicationpolicy.CanView(id, app) || !notepolicy.CanRead(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to read memos on this application"))
		return
	}

	memos, err := h.Memos.ListByApplication(ctx, app.ID)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if memos == nil {
		memos = []models.Memo{}
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"memos": memos})
}

// HandleUpdateMemo edits a memo's content. Author only.
//
// Route: PATCH /applications/{id}/memos/{memoID}
func (h *Handler) HandleUpdateMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memo, ok2 := h.fetchMemo(ctx, w, r)
	if !ok2 {
		return
	}
	if !notepolicy.CanMutate(id, memo.AuthorID) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only the author may edit a memo"))
		return
	}

	var form memoForm
	if err := decodeNoteJSON(w, r, &form); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if err := form.validate(); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	updated, err := h.Memos.UpdateContent(ctx, memo.ID, form.Content)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, updated)
}

// HandleDeleteMemo removes a memo. Author only.
//
// Route: DELETE /applications/{id}/memos/{memoID}
func (h *Handler) HandleDeleteMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memo, ok2 := h.fetchMemo(ctx, w, r)
	if !ok2 {
		return
	}
	if !notepolicy.CanMutate(id, memo.AuthorID) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only the author may delete a memo"))
		return
	}

	if _, err := h.Memos.Delete(ctx, memo.ID); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fetchApp resolves the {id} route param to an application, writing
// the 404 itself when the record is missing.
func (h *Handler) fetchApp(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Application, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("application"))
		return models.Application{}, false
	}
	app, err := h.Apps.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("application"))
		return models.Application{}, false
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return models.Application{}, false
	}
	return app, true
}

// fetchMemo resolves {memoID} and checks it belongs to the
// application named in the path.
func (h *Handler) fetchMemo(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Memo, bool) {
	app, ok := h.fetchApp(ctx, w, r)
	if !ok {
		return models.Memo{}, false
	}
	mid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memoID"))
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("memo"))
		return models.Memo{}, false
	}
	memo, err := h.Memos.GetByID(ctx, mid)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && memo.ApplicationID != app.ID) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("memo"))
		return models.Memo{}, false
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return models.Memo{}, false
	}
	return memo, true
}
