// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	"github.com/dalemusser/opportunityhub/internal/app/system/ratelimit"
	"github.com/dalemusser/opportunityhub/internal/app/system/suggestcache"
	"github.com/dalemusser/opportunityhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// ConnectDB opens the MongoDB client and, when configured, the Redis client
// backing the suggestion cache. A Redis failure is logged and the cache is
// disabled; a MongoDB failure aborts startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize).
		SetAppName("opportunityhub")

	client, err := mongo.Connect(cctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize),
		zap.Uint64("min_pool_size", appCfg.MongoMinPoolSize))

	deps := DBDeps{MongoClient: client, MongoDatabase: db}

	if appCfg.RedisURL != "" {
		rdb, err := suggestcache.Connect(cctx, appCfg.RedisURL)
		if err != nil {
			logger.Warn("suggestion cache disabled", zap.Error(err))
		} else {
			logger.Info("connected to Redis suggestion cache",
				zap.Duration("ttl", appCfg.SuggestCacheTTL))
			deps.Redis = rdb
		}
	}

	if appCfg.ExpirySweepSpec != "" {
		deps.Sweep = workers.NewExpirySweep(opportunitystore.New(db), logger, appCfg.ExpirySweepSpec)
	}

	if appCfg.SuggestRateLimit > 0 {
		deps.SuggestLimiter = ratelimit.New(appCfg.SuggestRateLimit, time.Minute)
	}
	if appCfg.SaveRateLimit > 0 {
		deps.SaveLimiter = ratelimit.New(appCfg.SaveRateLimit, time.Minute)
	}

	return deps, nil
}
