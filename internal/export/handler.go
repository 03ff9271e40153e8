// internal/export/handler.go
package export

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libris/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the export endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/export/books", h.report(Service.BooksReport))
	r.Get("/export/authors", h.report(Service.AuthorsReport))
	r.Get("/export/orders", h.report(Service.OrdersReport))
}

func (h *Handler) report(build func(Service, context.Context) (*Report, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := build(h.service, r.Context())
		if err != nil {
			web.Error(w, err)
			return
		}
		w.Header().Set("Content-Type", report.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(report.Body)
	}
}
