// internal/notifications/handler.go
package notifications

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

// Routes mounts the notifications endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/notifications", h.Create)
	r.Post("/notifications/order", h.CreateOrder)
	r.Post("/notifications/return", h.CreateReturn)
	r.Get("/notifications/{userId}", h.FindByUser)
	r.Patch("/notifications/{id}/read", h.MarkAsRead)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	notification, err := h.service.Create(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, notification)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var params OrderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	notification, err := h.service.CreateOrderNotification(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, notification)
}

func (h *Handler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	var params OrderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	notification, err := h.service.CreateReturnNotification(r.Context(), params)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, notification)
}

func (h *Handler) FindByUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	notification, err := h.service.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, notification)
}
