// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration. Ports, TLS, log level and
// CORS belong to WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Suggestion cache (blank RedisURL disables it)
	RedisURL        string
	SuggestCacheTTL time.Duration

	// Session and token verification. Both are issued by the accounts
	// service; this service only reads them.
	SessionKey    string        // Secret key shared with the accounts service
	SessionName   string        // Cookie name (default: opphub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime
	JWTSecret     string        // HS256 secret for bearer tokens (blank disables them)

	// Per-minute request limits (0 disables). Suggestions are counted per
	// client IP, saves per signed-in user.
	SuggestRateLimit int
	SaveRateLimit    int

	// TrustProxyHeaders keys suggestion limits by X-Forwarded-For/X-Real-IP.
	// Enable only behind a reverse proxy that sets those headers.
	TrustProxyHeaders bool

	// Expiry sweep schedule (cron spec, blank disables the sweep)
	ExpirySweepSpec string

	// SeedDemoData inserts sample opportunities into an empty collection.
	SeedDemoData bool

	// Handler and worker timeouts
	Timeouts TimeoutsConfig
}

// TimeoutsConfig mirrors timeouts.Config with values read from config.
type TimeoutsConfig struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Sweep  time.Duration
}
