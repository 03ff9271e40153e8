// internal/orders/handler.go
package orders

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

// Routes mounts the orders endpoints on a router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/user/{userId}", h.GetOrdersByUser)
	r.Get("/orders/{id}", h.GetOrder)
	r.Patch("/orders/status", h.UpdateStatus)
	r.Patch("/orders/{id}/cancel", h.CancelOrder)
	r.Patch("/orders/{id}/return", h.ReturnOrder)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string        `json:"userId"`
		Items  []ItemRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req.UserID, req.Items)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, order)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, order)
}

func (h *Handler) GetOrdersByUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListOrdersForUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{
		Status:   r.URL.Query().Get("status"),
		UserID:   r.URL.Query().Get("userId"),
		DateFrom: r.URL.Query().Get("dateFrom"),
		DateTo:   r.URL.Query().Get("dateTo"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.service.ListOrders(r.Context(), q)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, page)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.Validation("invalid request body"))
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), req.OrderID, req.Status)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, order)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, order)
}

func (h *Handler) ReturnOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.ReturnOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, order)
}
