// Package api is the HTTP client for the pizzeria ordering backend. It
// speaks the backend's JSON dialect, attaches the session bearer token, and
// translates failures into the application error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/obafemitayor/user-snack/internal/session"
	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
	"github.com/obafemitayor/user-snack/pkg/httpclient"
)

// Doer executes HTTP requests. Satisfied by httpclient.Client and
// httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the ordering backend. Read calls go through a retrying
// doer; order-creating calls go through a single-attempt doer so a timeout
// can never place a duplicate order.
type Client struct {
	baseURL string
	reads   Doer
	writes  Doer
	session *session.Manager
	logger  *slog.Logger
}

// NewClient creates an API client. reads handles idempotent calls, writes
// handles mutating calls.
func NewClient(baseURL string, reads, writes Doer, sess *session.Manager, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		reads:   reads,
		writes:  writes,
		session: sess,
		logger:  logger,
	}
}

// newRequest builds a request for the given path with an optional JSON body.
// The session token, when present, is attached as a bearer credential.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token, err := c.session.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and decodes a 2xx JSON body into out. A rejected
// credential (401/403) and an unreachable backend both invalidate the
// session: in either case the stored token cannot be trusted to work, so
// the user is sent back through login.
func (c *Client) do(ctx context.Context, d Doer, req *http.Request, operation string, out any) error {
	return c.exec(ctx, d, req, operation, out, true)
}

// doPublic is do without session invalidation, for the auth endpoints
// themselves. A failed login must not bounce the user through the
// invalidation hook it would then trigger.
func (c *Client) doPublic(ctx context.Context, d Doer, req *http.Request, operation string, out any) error {
	return c.exec(ctx, d, req, operation, out, false)
}

func (c *Client) exec(ctx context.Context, d Doer, req *http.Request, operation string, out any, invalidate bool) error {
	resp, err := d.Do(ctx, req)
	if err != nil {
		c.logger.ErrorContext(ctx, "api request failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		if invalidate {
			c.session.Invalidate(ctx, "backend unreachable")
		}
		return apperrors.Network(fmt.Errorf("%s: %w", operation, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := httpclient.ParseResponseError(resp, operation)
		if invalidate && apperrors.IsAuthError(apiErr) {
			c.session.Invalidate(ctx, fmt.Sprintf("backend rejected credentials (%d)", resp.StatusCode))
		}
		return apiErr
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
