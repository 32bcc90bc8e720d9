package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/pkg/pagination"
)

// PizzaPage is one page of the menu listing.
type PizzaPage struct {
	Items   []domain.Pizza `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Pages   int            `json:"pages"`
	HasNext bool           `json:"has_next"`
	HasPrev bool           `json:"has_prev"`
}

// ListPizzas fetches one page of the pizza menu.
func (c *Client) ListPizzas(ctx context.Context, params pagination.Params) (PizzaPage, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", params.Page))
	q.Set("limit", fmt.Sprintf("%d", params.Limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/pizzas/?"+q.Encode(), nil)
	if err != nil {
		return PizzaPage{}, err
	}

	var page PizzaPage
	if err := c.do(ctx, c.reads, req, "list pizzas", &page); err != nil {
		return PizzaPage{}, err
	}
	return page, nil
}

// GetPizza fetches a single pizza by id.
func (c *Client) GetPizza(ctx context.Context, id string) (domain.Pizza, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/pizzas/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Pizza{}, err
	}

	var pizza domain.Pizza
	if err := c.do(ctx, c.reads, req, "get pizza", &pizza); err != nil {
		return domain.Pizza{}, err
	}
	return pizza, nil
}
