// Package http serves the admin order console: a small JSON API the staff
// UI calls to watch incoming orders and move them through their lifecycle.
// It fronts the ordering backend; nothing here owns data.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obafemitayor/user-snack/internal/api"
	"github.com/obafemitayor/user-snack/internal/domain"
	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
	"github.com/obafemitayor/user-snack/pkg/httputil"
	"github.com/obafemitayor/user-snack/pkg/pagination"
)

// OrderService is the slice of the API client the console needs.
type OrderService interface {
	ListOrders(ctx context.Context, params pagination.Params, status string) (api.OrderPage, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
}

// OrdersHandler exposes the order console endpoints.
type OrdersHandler struct {
	orders OrderService
	logger *slog.Logger
}

// NewOrdersHandler creates an orders handler.
func NewOrdersHandler(orders OrderService, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{orders: orders, logger: logger}
}

// orderView is an order decorated with its badge color for the console UI.
type orderView struct {
	domain.Order
	StatusColor string `json:"status_color"`
}

func toView(o domain.Order) orderView {
	return orderView{Order: o, StatusColor: o.Status.Color()}
}

// orderPageView mirrors api.OrderPage with decorated items.
type orderPageView struct {
	Items   []orderView `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Pages   int         `json:"pages"`
	HasNext bool        `json:"has_next"`
	HasPrev bool        `json:"has_prev"`
}

// List handles GET /orders. The status query filters by lifecycle state;
// "all" or no value lists everything.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	status := r.URL.Query().Get("status")
	if status != "" && status != api.StatusAll {
		if _, err := domain.ParseOrderStatus(status); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
			return
		}
	}

	page, err := h.orders.ListOrders(r.Context(), params, status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view := orderPageView{
		Items:   make([]orderView, 0, len(page.Items)),
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		Pages:   page.Pages,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	}
	for _, o := range page.Items {
		view.Items = append(view.Items, toView(o))
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// Get handles GET /orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toView(order)})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /orders/{id}/status.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "order status updated",
		slog.String("order_id", id),
		slog.String("status", string(status)),
	)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toView(order)})
}

// statusView is one entry of the status filter the console renders.
type statusView struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// ListStatuses handles GET /orders/statuses, the console's filter options.
func (h *OrdersHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses := make([]statusView, 0, len(domain.OrderStatuses))
	for _, s := range domain.OrderStatuses {
		statuses = append(statuses, statusView{Value: string(s), Color: s.Color()})
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: statuses})
}
