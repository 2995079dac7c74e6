// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/candidacyhub/internal/app/store/users"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/dalemusser/candidacyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/roles"
)

// Handler serves the signed-in user's own account record. Completing
// the profile is where a user picks their role; choosing a leader
// role parks them as pending until an admin approves.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a profile Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

// HandleView returns the caller's own user record.
//
// Route: GET /profile
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	oid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("user"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.WriteError(w, h.Log, apperrors.NotFound("user"))
		return
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, u)
}

// HandleUpdate completes or edits the caller's profile. Admin cannot
// be self-assigned here; it is granted at bootstrap or by another
// admin.
//
// Route: PUT /profile
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		apierr.WriteError(w, h.Log, apperrors.Authorization("sign in required"))
		return
	}
	oid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		apierr.WriteError(w, h.Log, apperrors.NotFound("user"))
		return
	}

	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Stake    string `json:"stake"`
		Ward     string `json:"ward"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, h.Log, apperrors.Validation("request body is not valid JSON"))
		return
	}

	fullName := htmlsanitize.StripAll(normalize.Name(req.FullName))
	role := normalize.Role(req.Role)
	if fullName == "" {
		apierr.WriteError(w, h.Log, apperrors.Validation("full_name is required"))
		return
	}
	if !roles.Valid(role) || role == roles.Admin {
		apierr.WriteError(w, h.Log, apperrors.Validation("role must be applicant, session_leader, stake_president, or bishop"))
		return
	}
	if roles.IsLeader(role) || role == roles.Applicant {
		if normalize.Place(req.Stake) == "" || normalize.Place(req.Ward) == "" {
			apierr.WriteError(w, h.Log, apperrors.Validation("stake and ward are required"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, oid,
		fullName,
		normalize.Phone(req.Phone),
		normalize.Place(req.Stake),
		normalize.Place(req.Ward),
		role)
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("profile updated",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role),
		zap.String("leader_status", u.LeaderStatus))
	apierr.WriteJSON(w, http.StatusOK, u)
}
