// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config(appCfg.Timeouts))

	if appCfg.SeedDemoData {
		n, err := seedDemoData(ctx, opportunitystore.New(deps.MongoDatabase), logger)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("seeded demo opportunities", zap.Int("count", n))
		}
	}

	if deps.Sweep != nil {
		if err := deps.Sweep.Start(); err != nil {
			return err
		}
	}
	return nil
}
