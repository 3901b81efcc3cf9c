package booking

import "github.com/go-chi/chi/v5"

// Routes returns the booking routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/quote", h.Quote)
	r.Post("/update", h.BatchUpdate)

	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/folders", h.ProvisionFolders)

	return r
}
