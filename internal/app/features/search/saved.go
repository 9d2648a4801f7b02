// internal/app/features/search/saved.go
package search

import (
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/opportunityhub/internal/app/features/errors"
	savedsearchstore "github.com/dalemusser/opportunityhub/internal/app/store/savedsearches"
	"github.com/dalemusser/opportunityhub/internal/app/system/auth"
	"github.com/dalemusser/opportunityhub/internal/app/system/limits"
	"github.com/dalemusser/opportunityhub/internal/app/system/timeouts"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// saveRequest is the POST /search/save body.
type saveRequest struct {
	Name    string          `json:"name"`
	Filters filter.Snapshot `json:"filters"`
}

// Save handles POST /search/save.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req saveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxSaveSearchBody)).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode save search body failed", err, "Invalid request body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	// Round-trip through the model so sort keys are normalised before storing.
	snap := filter.FromSnapshot(req.Filters).Snapshot()
	saved, err := h.Saved.Create(ctx, userID, req.Name, snap)
	if errors.Is(err, savedsearchstore.ErrInvalidName) {
		uierrors.Write(w, http.StatusBadRequest, "Name is required and must be at most 100 characters")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save search failed", err, "Failed to save search")
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, saved)
}

// ListSaved handles GET /search/saved.
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	list, err := h.Saved.ListActive(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list saved searches failed", err, "Failed to get saved searches")
		return
	}
	if list == nil {
		list = []models.SavedSearch{}
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// DeleteSaved handles DELETE /search/saved/{id}.
func (h *Handler) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	err := h.Saved.SoftDelete(ctx, userID, chi.URLParam(r, "id"))
	if errors.Is(err, savedsearchstore.ErrNotFound) {
		h.ErrLog.NotFound(w, "Saved search not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete saved search failed", err, "Failed to delete saved search")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Saved search deleted"})
}

// userID resolves the caller. RequireSignedIn runs first, so a failure here
// means the identity in context is malformed.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, false
	}
	id, err := u.UserID()
	if err != nil {
		uierrors.Write(w, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, false
	}
	return id, true
}
