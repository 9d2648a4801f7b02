// internal/app/system/workers/expirysweep.go
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Expirer closes active opportunities whose application deadline has passed.
type Expirer interface {
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweep periodically closes opportunities past their deadline so they
// drop out of search results.
type ExpirySweep struct {
	store Expirer
	log   *zap.Logger
	spec  string
	now   func() time.Time
	cron  *cron.Cron
}

// NewExpirySweep creates the worker. spec is a cron expression or a
// descriptor such as "@every 15m" or "@hourly".
func NewExpirySweep(store Expirer, logger *zap.Logger, spec string) *ExpirySweep {
	return &ExpirySweep{
		store: store,
		log:   logger,
		spec:  spec,
		now:   func() time.Time { return time.Now().UTC() },
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
	}
}

// Start schedules the sweep. It fails only for an invalid spec.
func (w *ExpirySweep) Start() error {
	if _, err := w.cron.AddFunc(w.spec, func() {
		ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Sweep)
		defer cancel()
		_, _ = w.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", w.spec, err)
	}
	w.cron.Start()
	w.log.Info("expiry sweep worker started", zap.String("spec", w.spec))
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish or for ctx
// to end, whichever comes first.
func (w *ExpirySweep) Stop(ctx context.Context) {
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
		w.log.Warn("expiry sweep still running at shutdown")
	}
	w.log.Info("expiry sweep worker stopped")
}

// RunOnce performs a single sweep and returns how many opportunities closed.
func (w *ExpirySweep) RunOnce(ctx context.Context) (int64, error) {
	n, err := w.store.CloseExpired(ctx, w.now())
	if err != nil {
		w.log.Error("failed to close expired opportunities", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		w.log.Info("closed expired opportunities", zap.Int64("count", n))
	}
	return n, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
