// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for OpportunityHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, redis_url, etc.
//   - Environment variables: OPPHUB_MONGO_URI, OPPHUB_REDIS_URL, etc.
//   - Command-line flags: --mongo_uri, --redis_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "opportunity_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Suggestion cache
	{Name: "redis_url", Default: "", Desc: "Redis URL for the suggestion cache (blank disables caching)"},
	{Name: "suggest_cache_ttl", Default: "60s", Desc: "How long cached suggestions live (e.g., 60s, 5m)"},

	// Rate limits
	{Name: "suggest_rate_limit", Default: 120, Desc: "Suggestion requests per minute per client IP (0 disables)"},
	{Name: "save_rate_limit", Default: 20, Desc: "Saved-search creations per minute per user (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (only behind a reverse proxy)"},

	// Identity
	{Name: "session_key", Default: "", Desc: "Session signing key shared with the accounts service (blank uses an ephemeral key)"},
	{Name: "session_name", Default: "opphub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime"},
	{Name: "jwt_secret", Default: "", Desc: "HS256 secret for bearer tokens (blank disables bearer auth)"},

	// Background work
	{Name: "expiry_sweep_spec", Default: "@every 15m", Desc: "Cron spec for closing opportunities past their deadline (blank disables)"},
	{Name: "seed_demo_data", Default: false, Desc: "Insert sample opportunities when the collection is empty"},

	// Timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document operation timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "Search and listing timeout"},
	{Name: "timeout_sweep", Default: "60s", Desc: "Expiry sweep run timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, OPPHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "OPPHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		RedisURL:        strings.TrimSpace(appValues.String("redis_url")),
		SuggestCacheTTL: appValues.Duration("suggest_cache_ttl", time.Minute),

		SuggestRateLimit: appValues.Int("suggest_rate_limit"),
		SaveRateLimit:    appValues.Int("save_rate_limit"),

		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),
		JWTSecret:     appValues.String("jwt_secret"),

		ExpirySweepSpec: strings.TrimSpace(appValues.String("expiry_sweep_spec")),
		SeedDemoData:    appValues.Bool("seed_demo_data"),

		Timeouts: TimeoutsConfig{
			Ping:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
			Short:  appValues.Duration("timeout_short", timeouts.DefaultShort),
			Medium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
			Sweep:  appValues.Duration("timeout_sweep", timeouts.DefaultSweep),
		},
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Connection strings and the sweep schedule are checked here so that a typo
// fails fast instead of surfacing on the first request or tick.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database is required")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if appCfg.RedisURL != "" {
		u, err := url.Parse(appCfg.RedisURL)
		if err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			return fmt.Errorf("invalid redis_url: must be redis:// or rediss://")
		}
	}

	if appCfg.SuggestRateLimit < 0 || appCfg.SaveRateLimit < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if appCfg.ExpirySweepSpec != "" {
		if _, err := cron.ParseStandard(appCfg.ExpirySweepSpec); err != nil {
			return fmt.Errorf("invalid expiry_sweep_spec %q: %w", appCfg.ExpirySweepSpec, err)
		}
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == "" {
			return fmt.Errorf("session_key is required in production")
		}
		if appCfg.JWTSecret == "" {
			logger.Warn("jwt_secret not set; bearer tokens will be ignored")
		}
	}

	return nil
}
