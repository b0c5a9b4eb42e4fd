// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	campaignsfeature "github.com/dalemusser/ecohub/internal/app/features/campaigns"
	errorsfeature "github.com/dalemusser/ecohub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/ecohub/internal/app/features/health"
	"github.com/dalemusser/ecohub/internal/app/store/audit"
	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/app/system/auditlog"
	"github.com/dalemusser/ecohub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. EcoHub applies request ids and session
// middleware globally, then mounts the health check, the Prometheus
// endpoint and the campaigns API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// The cookie is issued by the auth service; in dev without a shared key
	// we still boot, but no real cookie will verify.
	sessionKey := appCfg.SessionKey
	if sessionKey == "" {
		sessionKey = auth.GenerateKey()
		logger.Warn("session_key not set; generated a throwaway key (dev only)")
	}
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(sessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	auditLogger := auditlog.New(audit.New(deps.EcoHubMongoDatabase), logger, auditConfig(appCfg))
	store := campaignstore.NewWithBreaker(deps.EcoHubMongoDatabase, breakerConfig(appCfg))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Set before mounting so subrouters inherit them.
	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.EcoHubMongoClient, appCfg.Version, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	campaignsHandler := campaignsfeature.NewHandler(store, errLog, auditLogger, logger, appCfg.MaxPageLimit)
	r.Mount("/campaigns", campaignsfeature.Routes(campaignsHandler, sessionMgr, routeConfig(appCfg)))

	return r, nil
}
