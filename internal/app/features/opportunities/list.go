// internal/app/features/opportunities/list.go
package opportunities

import (
	"net/http"

	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
)

// List handles GET /opportunities. It accepts the search querystring but
// only honours search, type, category, state, lga, remote and startDate,
// newest first. Clients fall back to it when /search/opportunities fails.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	page, err := h.Search.List(ctx, filter.FromValues(r.URL.Query()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list opportunities failed", err, "Failed to list opportunities")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, page)
}
