// internal/app/features/search/search.go
package search

import (
	"net/http"

	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/waffle/pantry/query"
)

// Opportunities handles GET /search/opportunities. Malformed parameters are
// coerced to unset and never produce a 400.
func (h *Handler) Opportunities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	m := filter.FromValues(r.URL.Query())
	page, err := h.Search.Search(ctx, m)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "search opportunities failed", err, "Failed to search opportunities")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, page)
}

// Suggestions handles GET /search/suggestions?q=.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	out, err := h.Search.Suggest(ctx, query.Get(r, "q"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "search suggestions failed", err, "Failed to get suggestions")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, out)
}
