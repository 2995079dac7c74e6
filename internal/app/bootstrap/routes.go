// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applicationsfeature "github.com/dalemusser/candidacyhub/internal/app/features/applications"
	authgooglefeature "github.com/dalemusser/candidacyhub/internal/app/features/authgoogle"
	healthfeature "github.com/dalemusser/candidacyhub/internal/app/features/health"
	leadersfeature "github.com/dalemusser/candidacyhub/internal/app/features/leaders"
	loginfeature "github.com/dalemusser/candidacyhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/candidacyhub/internal/app/features/logout"
	profilefeature "github.com/dalemusser/candidacyhub/internal/app/features/profile"
	recommendationsfeature "github.com/dalemusser/candidacyhub/internal/app/features/recommendations"
	reviewqueuefeature "github.com/dalemusser/candidacyhub/internal/app/features/reviewqueue"
	userstore "github.com/dalemusser/candidacyhub/internal/app/store/users"
	"github.com/dalemusser/candidacyhub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The router gets the session
// middleware applied globally, then mounts one feature router per
// application area: authentication, profile, applications,
// recommendations, the review queue, and admin leader management.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and
	// leader approvals take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	db := deps.MongoDatabase

	r := chi.NewRouter()
	r.Use(sessionMgr.LoadSessionUser)

	// Health endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/healthz", healthHandler.ServeLive)
	r.Get("/readyz", healthHandler.ServeReady)

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, logger)
	r.Post("/login", loginHandler.HandleLogin)
	r.Post("/register", loginHandler.HandleRegister)

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Post("/logout", logoutHandler.HandleLogout)

	googleHandler := authgooglefeature.NewHandler(db, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Account
	profileHandler := profilefeature.NewHandler(db, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Candidacy records
	applicationsHandler := applicationsfeature.NewHandler(db, logger)
	r.Mount("/applications", applicationsfeature.Routes(applicationsHandler))

	recommendationsHandler := recommendationsfeature.NewHandler(db, logger)
	r.Mount("/recommendations", recommendationsfeature.Routes(recommendationsHandler))

	// Merged reviewer feed
	queueHandler := reviewqueuefeature.NewHandler(db, logger)
	r.Mount("/review-queue", reviewqueuefeature.Routes(queueHandler))

	// Admin leader management
	leadersHandler := leadersfeature.NewHandler(db, logger)
	r.Mount("/leaders", leadersfeature.Routes(leadersHandler))

	return r, nil
}
