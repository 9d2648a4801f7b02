// internal/app/features/opportunities/handler.go
package opportunities

import (
	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	appsearch "github.com/dalemusser/opportunityhub/internal/app/search"
	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public opportunity listing and detail endpoints.
type Handler struct {
	Search *appsearch.Service
	Store  *opportunitystore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs an opportunities Handler.
func NewHandler(db *mongo.Database, svc *appsearch.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Search: svc,
		Store:  opportunitystore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
