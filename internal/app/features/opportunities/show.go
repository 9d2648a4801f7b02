// internal/app/features/opportunities/show.go
package opportunities

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Show handles GET /opportunities/{id} and counts the view.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.NotFound(w, "Opportunity not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	o, err := h.Store.GetActive(ctx, id)
	if errors.Is(err, opportunitystore.ErrNotFound) {
		h.ErrLog.NotFound(w, "Opportunity not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get opportunity failed", err, "Failed to load opportunity")
		return
	}

	// View counting is best effort.
	if err := h.Store.IncrementViews(ctx, id); err != nil {
		h.Log.Warn("increment views failed", zap.String("id", id.Hex()), zap.Error(err))
	} else {
		o.Views++
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"opportunity": o})
}
