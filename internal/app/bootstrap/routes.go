// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/opportunityhub/internal/app/features/health"
	opportunitiesfeature "github.com/dalemusser/opportunityhub/internal/app/features/opportunities"
	searchfeature "github.com/dalemusser/opportunityhub/internal/app/features/search"
	appsearch "github.com/dalemusser/opportunityhub/internal/app/search"
	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	"github.com/dalemusser/opportunityhub/internal/app/system/auth"
	"github.com/dalemusser/opportunityhub/internal/app/system/ratelimit"
	"github.com/dalemusser/opportunityhub/internal/app/system/requestid"
	"github.com/dalemusser/opportunityhub/internal/app/system/suggestcache"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Every request gets a request id, an optional caller identity (bearer token
// or session cookie) and gzip compression of JSON responses. Feature routers
// are mounted for search, the plain opportunity listing and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	sessionMgr.UseBearerTokens(appCfg.JWTSecret)

	var cache suggestcache.Cache = suggestcache.Nop{}
	if deps.Redis != nil {
		cache = suggestcache.NewRedis(deps.Redis, appCfg.SuggestCacheTTL, logger)
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	svc := appsearch.NewService(opportunitystore.New(deps.MongoDatabase), cache, logger)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	// Global auth middleware: loads SessionUser into context when a valid
	// token or cookie is present.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, cache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	searchHandler := searchfeature.NewHandler(deps.MongoDatabase, svc, errLog, logger)
	searchHandler.SuggestLimiter = deps.SuggestLimiter
	searchHandler.SaveLimiter = deps.SaveLimiter
	if appCfg.TrustProxyHeaders {
		searchHandler.ClientKey = ratelimit.ForwardedClientIP
	}
	r.Mount("/search", searchfeature.Routes(searchHandler, sessionMgr))

	oppHandler := opportunitiesfeature.NewHandler(deps.MongoDatabase, svc, errLog, logger)
	r.Mount("/opportunities", opportunitiesfeature.Routes(oppHandler))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		errLog.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		errorsfeature.Write(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return gzhttp.GzipHandler(r), nil
}
