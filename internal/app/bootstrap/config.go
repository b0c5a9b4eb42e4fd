// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EcoHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: ECOHUB_MONGO_URI, ECOHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ecohub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Session cookie (shared with the auth service)
	{Name: "session_key", Default: "", Desc: "Session signing key; must match the auth service (blank generates one in dev)"},
	{Name: "session_name", Default: "ecohub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	// Audit logging settings
	{Name: "audit_lifecycle", Default: "all", Desc: "Campaign lifecycle event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_joins", Default: "all", Desc: "Join event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Rate limiting
	{Name: "join_rate_limit", Default: 10, Desc: "Join requests allowed per user per window (0 disables)"},
	{Name: "join_rate_window", Default: "1m", Desc: "Join rate limit window"},
	{Name: "write_rate_limit", Default: 30, Desc: "Create/update/delete requests allowed per user per window (0 disables)"},
	{Name: "write_rate_window", Default: "1m", Desc: "Write rate limit window"},

	{Name: "max_page_limit", Default: 100, Desc: "Largest page size a client may request"},

	// Database timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check ping timeout"},
	{Name: "timeout_read", Default: "5s", Desc: "Single-document read timeout"},
	{Name: "timeout_list", Default: "10s", Desc: "Discovery query timeout"},
	{Name: "timeout_write", Default: "10s", Desc: "Write timeout"},

	// Circuit breaker
	{Name: "breaker_failures", Default: 5, Desc: "Consecutive storage failures before the circuit opens"},
	{Name: "breaker_cooldown", Default: "15s", Desc: "How long the circuit stays open before probing"},

	{Name: "version", Default: "dev", Desc: "Version string reported by /health"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ECOHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ECOHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		AuditLifecycle: appValues.String("audit_lifecycle"),
		AuditJoins:     appValues.String("audit_joins"),

		JoinRateLimit:   appValues.Int("join_rate_limit"),
		JoinRateWindow:  appValues.Duration("join_rate_window", time.Minute),
		WriteRateLimit:  appValues.Int("write_rate_limit"),
		WriteRateWindow: appValues.Duration("write_rate_window", time.Minute),

		MaxPageLimit: appValues.Int("max_page_limit"),

		PingTimeout:  appValues.Duration("timeout_ping", 2*time.Second),
		ReadTimeout:  appValues.Duration("timeout_read", 5*time.Second),
		ListTimeout:  appValues.Duration("timeout_list", 10*time.Second),
		WriteTimeout: appValues.Duration("timeout_write", 10*time.Second),

		BreakerFailures: uint32(appValues.Int("breaker_failures")),
		BreakerCooldown: appValues.Duration("breaker_cooldown", 15*time.Second),

		Version: appValues.String("version"),
	}

	return coreCfg, appCfg, nil
}

// validAuditSettings are the accepted audit destinations.
var validAuditSettings = map[string]bool{
	auditlog.All: true,
	auditlog.DB:  true,
	auditlog.Log: true,
	auditlog.Off: true,
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked here to catch configuration errors before
// attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must be set")
	}

	// Outside dev the key has to be shared with the auth service, so a
	// generated one would reject every cookie.
	if coreCfg.Env != "dev" && appCfg.SessionKey == "" {
		return errors.New("session_key must be set outside dev")
	}

	for name, v := range map[string]string{
		"audit_lifecycle": appCfg.AuditLifecycle,
		"audit_joins":     appCfg.AuditJoins,
	} {
		if v != "" && !validAuditSettings[strings.ToLower(strings.TrimSpace(v))] {
			return fmt.Errorf("%s must be one of all, db, log, off (got %q)", name, v)
		}
	}

	if appCfg.JoinRateLimit < 0 || appCfg.WriteRateLimit < 0 {
		return errors.New("rate limits must not be negative")
	}
	if appCfg.MaxPageLimit < 0 {
		return errors.New("max_page_limit must not be negative")
	}

	return nil
}
