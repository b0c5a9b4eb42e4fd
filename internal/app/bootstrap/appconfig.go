// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS, body limits); this
// struct covers everything specific to the campaign service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session cookie written by the auth service. The key must match the
	// one that service signs with.
	SessionKey    string
	SessionName   string // Cookie name (default: ecohub-session)
	SessionDomain string // Cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLifecycle string // create/update/delete/status events
	AuditJoins     string // join events (high volume)

	// Rate limits (0 requests disables the limiter)
	JoinRateLimit   int
	JoinRateWindow  time.Duration
	WriteRateLimit  int
	WriteRateWindow time.Duration

	// MaxPageLimit caps ?limit= on list endpoints.
	MaxPageLimit int

	// Per-operation database timeouts
	PingTimeout  time.Duration
	ReadTimeout  time.Duration
	ListTimeout  time.Duration
	WriteTimeout time.Duration

	// Circuit breaker in front of the campaigns collection
	BreakerFailures uint32        // consecutive failures that open it
	BreakerCooldown time.Duration // open → half-open delay

	// Version is reported by /health.
	Version string
}
