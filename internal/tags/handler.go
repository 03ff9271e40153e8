// internal/tags/handler.go
package tags

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

// Routes mounts the tags endpoints on a router. The search route is
// registered before the ID route so "search" is never parsed as a tag ID.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/tags", h.Create)
	r.Get("/tags", h.List)
	r.Get("/tags/search", h.Search)
	r.Get("/tags/{id}", h.Get)
	r.Put("/tags/{id}", h.Update)
	r.Delete("/tags/{id}", h.Delete)
}

type tagRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	tag, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, tag)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, tags)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, tags)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, tag)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	tag, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, tag)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}
