package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/pkg/pagination"
)

// OrderPage is one page of the order listing.
type OrderPage struct {
	Items   []domain.Order `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Pages   int            `json:"pages"`
	HasNext bool           `json:"has_next"`
	HasPrev bool           `json:"has_prev"`
}

// StatusAll requests orders in every status from ListOrders.
const StatusAll = "all"

// CreateOrder submits a new order. This call is never retried: a duplicate
// submission would place a duplicate order, so a failure surfaces to the
// user, who decides whether to try again.
func (c *Client) CreateOrder(ctx context.Context, order domain.OrderRequest) (domain.Order, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/orders/", order)
	if err != nil {
		return domain.Order{}, err
	}

	var created domain.Order
	if err := c.do(ctx, c.writes, req, "create order", &created); err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

// ListOrders fetches one page of orders, optionally filtered by status.
// Passing StatusAll or an empty string lists every status.
func (c *Client) ListOrders(ctx context.Context, params pagination.Params, status string) (OrderPage, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", params.Page))
	q.Set("limit", fmt.Sprintf("%d", params.Limit))
	if status != "" && status != StatusAll {
		q.Set("status", status)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/orders/?"+q.Encode(), nil)
	if err != nil {
		return OrderPage{}, err
	}

	var page OrderPage
	if err := c.do(ctx, c.reads, req, "list orders", &page); err != nil {
		return OrderPage{}, err
	}
	return page, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	if err := c.do(ctx, c.reads, req, "get order", &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// UpdateOrderStatus moves an order to a new status and returns the updated
// order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	body := struct {
		Status domain.OrderStatus `json:"status"`
	}{Status: status}

	req, err := c.newRequest(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", body)
	if err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	if err := c.do(ctx, c.writes, req, "update order status", &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}
