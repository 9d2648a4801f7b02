// internal/app/features/search/routes.go
package search

import (
	"net/http"

	"github.com/dalemusser/opportunityhub/internal/app/system/auth"
	"github.com/dalemusser/opportunityhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /search subrouter. Searching and suggestions are open
// to everyone; saved searches require a signed-in caller.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	clientKey := h.ClientKey
	if clientKey == nil {
		clientKey = ratelimit.ClientIP
	}

	r := chi.NewRouter()
	r.Get("/opportunities", h.Opportunities)
	r.With(ratelimit.Middleware(h.SuggestLimiter, clientKey)).
		Get("/suggestions", h.Suggestions)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.With(ratelimit.Middleware(h.SaveLimiter, callerKey)).
			Post("/save", h.Save)
		r.Get("/saved", h.ListSaved)
		r.Delete("/saved/{id}", h.DeleteSaved)
	})
	return r
}

// callerKey buckets requests by signed-in user.
func callerKey(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}
