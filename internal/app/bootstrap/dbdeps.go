// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/opportunityhub/internal/app/system/ratelimit"
	"github.com/dalemusser/opportunityhub/internal/app/system/workers"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Redis is nil when redis_url is blank. Sweep is nil when expiry_sweep_spec
// is blank; it is built here so that Startup and Shutdown share it. The
// limiters are nil when their limit is zero; Shutdown stops their cleanup.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Redis         *redis.Client
	Sweep         *workers.ExpirySweep

	SuggestLimiter *ratelimit.Limiter
	SaveLimiter    *ratelimit.Limiter
}
