// internal/books/handler.go
package books

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

// Routes mounts the books endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/books", h.Create)
	r.Get("/books", h.List)
	r.Get("/books/available", h.Available)
	r.Get("/books/unavailable", h.Unavailable)
	r.Get("/books/top-rated", h.TopRated)
	r.Get("/books/recently-added", h.RecentlyAdded)
	r.Get("/books/{id}", h.Get)
	r.Put("/books/{id}", h.Update)
	r.Delete("/books/{id}", h.Delete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	book, err := h.service.Create(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, book)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{Search: r.URL.Query().Get("search")}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, book)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var params UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	book, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, book)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "book deleted"})
}

func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Available(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, items)
}

func (h *Handler) Unavailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Unavailable(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, items)
}

func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.service.TopRated(r.Context(), limit)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, items)
}

func (h *Handler) RecentlyAdded(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	items, err := h.service.RecentlyAdded(r.Context(), days)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, items)
}
