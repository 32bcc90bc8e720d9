package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/obafemitayor/user-snack/internal/domain"
)

// ListExtras fetches the full extras catalogue. The backend has answered
// both a bare array and an {"items": [...]} envelope across versions, so
// both shapes are accepted.
func (c *Client) ListExtras(ctx context.Context) ([]domain.Extra, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/extras/", nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, c.reads, req, "list extras", &raw); err != nil {
		return nil, err
	}

	var extras []domain.Extra
	if json.Unmarshal(raw, &extras) == nil {
		return extras, nil
	}

	var envelope struct {
		Items []domain.Extra `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("list extras: decode response: %w", err)
	}
	return envelope.Items, nil
}
