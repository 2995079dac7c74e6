// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierr "github.com/dalemusser/candidacyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/candidacyhub/internal/app/store/users"
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
	"github.com/dalemusser/candidacyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/candidacyhub/internal/app/system/limits"
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/candidacyhub/internal/app/system/timeouts"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// Handler serves email/password sign-in and account registration.
// Google sign-in lives in the authgoogle feature.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Sessions: sm,
		Limiter:  ratelimit.NewLoginLimiter(),
		Log:      logger,
	}
}

// HandleLogin verifies credentials and opens a session.
//
// Route: POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	body := http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		apierr.WriteError(w, h.Log, apperrors.Validation("request body is not valid JSON"))
		return
	}
	if req.Email == "" || req.Password == "" {
		apierr.WriteError(w, h.Log, apperrors.Validation("email and password are required"))
		return
	}

	if ok, reason := h.Limiter.Check(r, req.Email); !ok {
		h.Log.Warn("sign-in rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		apierr.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]string{
				"kind":    "rate_limited",
				"message": reason,
			},
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.VerifyPassword(ctx, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password answer identically.
		apierr.WriteJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]string{
				"kind":    "unauthorized",
				"message": "invalid email or password",
			},
		})
		return
	}

	h.Limiter.ResetEmail(req.Email)

	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()))
	apierr.WriteJSON(w, http.StatusOK, u)
}

// HandleRegister creates a password account and opens a session. The
// user completes role, stake, and ward later through /profile.
//
// Route: POST /register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	body := http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		apierr.WriteError(w, h.Log, apperrors.Validation("request body is not valid JSON"))
		return
	}

	fullName := htmlsanitize.StripAll(normalize.Name(req.FullName))
	email := normalize.Email(req.Email)
	switch {
	case fullName == "":
		apierr.WriteError(w, h.Log, apperrors.Validation("full_name is required"))
		return
	case email == "":
		apierr.WriteError(w, h.Log, apperrors.Validation("email is required"))
		return
	case len(req.Password) < 8:
		apierr.WriteError(w, h.Log, apperrors.Validation("password must be at least 8 characters"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.CreateWithPassword(ctx, models.User{
		FullName: fullName,
		Email:    email,
	}, req.Password)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apierr.WriteError(w, h.Log, apperrors.Validation("an account with this email already exists"))
		return
	}
	if err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}

	if err := h.Sessions.SignIn(w, r, u.ID.Hex()); err != nil {
		apierr.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	apierr.WriteJSON(w, http.StatusCreated, u)
}
