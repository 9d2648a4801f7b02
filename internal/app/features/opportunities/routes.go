// internal/app/features/opportunities/routes.go
package opportunities

import "github.com/go-chi/chi/v5"

// Routes returns the /opportunities subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Show)
	return r
}
