// internal/ratings/handler.go
package ratings

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// Routes mounts the ratings endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/ratings", h.Create)
	r.Get("/ratings", h.List)
	r.Get("/ratings/{id}", h.Get)
	r.Put("/ratings/{id}", h.Update)
	r.Delete("/ratings/{id}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	rating, err := h.service.Create(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, rating)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rating, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, rating)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var params UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	rating, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, rating)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "rating deleted"})
}
