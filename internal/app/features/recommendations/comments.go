// internal/app/features/recommendations/comments.go
package recommendations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	"github.com/dalemusser/candidacyhub/internal/app/policy/notepolicy"
	"github.com/dalemusser/candidacyhub/internal/app/policy/recommendationpolicy"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/authz"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// Comments are reviewer notes on a recommendation, with the same
// authorship rules as application memos: bishops and stake presidents
// write them, and only the author may change one afterwards.

// HandleCreateComment adds a comment to a recommendation.
//
// Route: POST /recommendations/{id}/comments
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, ok2 := h.fetchRec(ctx, w, r)
	if !ok2 {
		return
	}
	if !recommendationpolicy.CanView(id, rec) || !notepolicy.CanAuthor(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to add comments to this recommendation"))
		return
	}

	var form commentForm
	if err := decodeNoteJSON(w, r, &form); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if err := form.validate(); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	comment, err := h.Comments.Create(ctx, models.Comment{
		RecommendationID: rec.ID,
		AuthorID:         id.UserID,
		AuthorName:       id.Name,
		AuthorRole:       id.Role,
		Content:          form.Content,
	})
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("comment created",
		zap.String("comment_id", comment.ID.Hex()),
		zap.String("recommendation_id", rec.ID.Hex()))
	apierr.WriteJSON(w, http.StatusCreated, comment)
}

// HandleListComments returns a recommendation's comments, oldest first.
//
// Route: GET /recommendations/{id}/comments
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, ok2 := h.fetchRec(ctx, w, r)
	if !ok2 {
		return
	}
	if !recommendationpolicy.CanView(id, rec) || !notepolicy.CanRead(id) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("not allowed to read comments on this recommendation"))
		return
	}

	comments, err := h.Comments.ListByRecommendation(ctx, rec.ID)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// HandleUpdateComment edits a comment's content. Author only.
//
// Route: PATCH /recommendations/{id}/comments/{commentID}
func (h *Handler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comment, ok2 := h.fetchComment(ctx, w, r)
	if !ok2 {
		return
	}
	if !notepolicy.CanMutate(id, comment.AuthorID) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only the author may edit a comment"))
		return
	}

	var form commentForm
	if err := decodeNoteJSON(w, r, &form); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if err := form.validate(); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	updated, err := h.Comments.UpdateContent(ctx, comment.ID, form.Content)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, updated)
}

// HandleDeleteComment removes a comment. Author only.
//
// Route: DELETE /recommendations/{id}/comments/{commentID}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.FromRequest(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comment, ok2 := h.fetchComment(ctx, w, r)
	if !ok2 {
		return
	}
	if !notepolicy.CanMutate(id, comment.AuthorID) {
		apierr.WriteError(w, h.Log, apperrors.Authorization("only the author may delete a comment"))
		return
	}

	if _, err := h.Comments.Delete(ctx, comment.ID); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fetchComment resolves {commentID} and checks it belongs to the
// recommendation named in the path.
func (h *Handler) fetchComment(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Comment, bool) {
	rec, ok := h.fetchRec(ctx, w, r)
	if !ok {
		return models.Comment{}, false
	}
	cid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentID"))
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("comment"))
		return models.Comment{}, false
	}
	comment, err := h.Comments.GetByID(ctx, cid)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && comment.RecommendationID != rec.ID) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("comment"))
		return models.Comment{}, false
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return models.Comment{}, false
	}
	return comment, true
}
