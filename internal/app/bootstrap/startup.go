// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	campaignsfeature "github.com/dalemusser/ecohub/internal/app/features/campaigns"
	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/app/system/auditlog"
	"github.com/dalemusser/ecohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs after DB connections and schema setup are complete, but
// before the HTTP handler is built. EcoHub has nothing to warm, so it only
// records the effective settings.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	t := timeouts.Current()
	audit := auditConfig(appCfg)
	logger.Info("ecohub starting",
		zap.String("env", coreCfg.Env),
		zap.String("version", appCfg.Version),
		zap.String("audit_lifecycle", audit.Lifecycle),
		zap.String("audit_joins", audit.Joins),
		zap.Int("join_rate_limit", appCfg.JoinRateLimit),
		zap.Int("write_rate_limit", appCfg.WriteRateLimit),
		zap.Int("max_page_limit", appCfg.MaxPageLimit),
		zap.Duration("timeout_read", t.Read),
		zap.Duration("timeout_list", t.List),
		zap.Duration("timeout_write", t.Write))
	return nil
}

func auditConfig(appCfg AppConfig) auditlog.Config {
	cfg := auditlog.DefaultConfig()
	if appCfg.AuditLifecycle != "" {
		cfg.Lifecycle = appCfg.AuditLifecycle
	}
	if appCfg.AuditJoins != "" {
		cfg.Joins = appCfg.AuditJoins
	}
	return cfg
}

func routeConfig(appCfg AppConfig) campaignsfeature.RouteConfig {
	return campaignsfeature.RouteConfig{
		JoinLimit: ratelimit.Config{
			Requests: appCfg.JoinRateLimit,
			Window:   appCfg.JoinRateWindow,
			Message:  "Too many join requests. Please wait and try again.",
		},
		WriteLimit: ratelimit.Config{
			Requests: appCfg.WriteRateLimit,
			Window:   appCfg.WriteRateWindow,
		},
	}
}

func breakerConfig(appCfg AppConfig) campaignstore.BreakerConfig {
	cfg := campaignstore.DefaultBreakerConfig
	if appCfg.BreakerFailures > 0 {
		cfg.FailureThreshold = appCfg.BreakerFailures
	}
	if appCfg.BreakerCooldown > 0 {
		cfg.Timeout = appCfg.BreakerCooldown
	}
	return cfg
}
