// internal/categories/handler.go
package categories

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

// Routes mounts the categories endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/categories", h.Create)
	r.Get("/categories", h.List)
	r.Get("/categories/{id}", h.Get)
	r.Put("/categories/{id}", h.Update)
	r.Delete("/categories/{id}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	category, err := h.service.Create(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, category)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, category)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var params UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	category, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, category)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
