// internal/suggestions/handler.go
package suggestions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libris/internal/apperr"
	"libris/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the author suggestion endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/author-suggestions", h.Create)
	r.Get("/author-suggestions", h.List)
	r.Get("/author-suggestions/{id}", h.Get)
	r.Patch("/author-suggestions/{id}/approve", h.Approve)
	r.Patch("/author-suggestions/{id}/reject", h.Reject)
	r.Delete("/author-suggestions/{id}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	suggestion, err := h.service.Create(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, suggestion)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	result, err := h.service.List(r.Context(), status)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, suggestion)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	author, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, author)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, suggestion)
}

// Delete checks admin access from the X-Admin header. The gateway is
// expected to strip or set it; there is no authentication stack here.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	isAdmin := r.Header.Get("X-Admin") == "true"
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), isAdmin); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "author suggestion deleted"})
}
