// internal/app/features/search/handler.go
package search

import (
	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	appsearch "github.com/dalemusser/opportunityhub/internal/app/search"
	savedsearchstore "github.com/dalemusser/opportunityhub/internal/app/store/savedsearches"
	"github.com/dalemusser/opportunityhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the /search endpoints. The limiters are optional; a nil
// limiter leaves its route unthrottled. ClientKey buckets suggestion
// requests and defaults to ratelimit.ClientIP.
type Handler struct {
	Search *appsearch.Service
	Saved  *savedsearchstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	SuggestLimiter *ratelimit.Limiter
	SaveLimiter    *ratelimit.Limiter
	ClientKey      ratelimit.KeyFunc
}

// NewHandler constructs a search Handler.
func NewHandler(db *mongo.Database, svc *appsearch.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Search: svc,
		Saved:  savedsearchstore.New(db),
		Log:    logger,
		ErrLog: errLog,

		ClientKey: ratelimit.ClientIP,
	}
}
