// internal/app/features/leaders/handler.go
package leaders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/candidacyhub/internal/app/store/users"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
)

// Handler is the admin surface for managing leader accounts: listing
// them, approving pending ones, and reassigning roles. Only admins
// reach these handlers (enforced in routes.go); approval is what
// grants a leader visibility beyond their own recommendations.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a leaders Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

// HandleList returns leader accounts, optionally filtered with
// ?status=pending or ?status=approved.
//
// Route: GET /leaders
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := normalize.LeaderStatus(r.URL.Query().Get("status"))
	if status != "" && !roles.ValidLeaderStatus(status) {
		apierr.WriteError(w, h.Log, apperrors.Validation("unknown leader status filter"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	leaders, err := h.Users.ListLeaders(ctx, status)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	if leaders == nil {
		leaders = []models.User{}
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"leaders": leaders})
}

// HandleApprove flips a pending leader to approved.
//
// Route: POST /leaders/{id}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.fetchUser(ctx, w, r)
	if !ok {
		return
	}
	if !roles.IsLeader(u.Role) {
		apierr.WriteError(w, h.Log, apperrors.Validation("user does not hold a leader role"))
		return
	}

	updated, err := h.Users.SetLeaderStatus(ctx, u.ID, roles.LeaderApproved)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("leader approved",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))
	apierr.WriteJSON(w, http.StatusOK, updated)
}

// HandleSetRole reassigns a user's role. Granting a leader role resets
// leader status to pending; the new leader must be approved again.
//
// Route: POST /leaders/{id}/role
func (h *Handler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.fetchUser(ctx, w, r)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, h.Log, apperrors.Validation("request body is not valid JSON"))
		return
	}
	role := normalize.Role(req.Role)
	if !roles.Valid(role) {
		apierr.WriteError(w, h.Log, apperrors.Validation("unknown role"))
		return
	}

	updated, err := h.Users.SetRole(ctx, u.ID, role)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("user role changed",
		zap.String("user_id", u.ID.Hex()),
		zap.String("from", u.Role),
		zap.String("to", role))
	apierr.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) fetchUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.User, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("user"))
		return models.User{}, false
	}
	u, err := h.Users.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("user"))
		return models.User{}, false
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return models.User{}, false
	}
	return u, true
}
