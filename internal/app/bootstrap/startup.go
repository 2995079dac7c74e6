// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/candidacyhub/internal/app/store/users"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// CandidacyHub uses it to guarantee an admin account exists: without
// one, no leader could ever be approved and no decision ever recorded.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.BootstrapAdminEmail == "" {
		logger.Warn("bootstrap_admin_email not set; no admin account ensured")
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	if err := users.EnsureAdmin(ctx, appCfg.BootstrapAdminEmail); err != nil {
		return err
	}
	logger.Info("admin account ensured",
		zap.String("email", appCfg.BootstrapAdminEmail))
	return nil
}
