package api

import (
	"context"
	"net/http"

	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and persists it as the
// active session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth", body)
	if err != nil {
		return err
	}

	var resp tokenResponse
	if err := c.doPublic(ctx, c.writes, req, "login", &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return apperrors.Unauthorized("login: backend returned an empty token")
	}
	return c.session.SetToken(ctx, resp.AccessToken)
}

// EnsureSession makes sure a session token exists, minting a demo token for
// the given user when none is persisted. Storefront reads work without this,
// but order submission requires a credential.
func (c *Client) EnsureSession(ctx context.Context, userID string) error {
	if c.session.HasSession(ctx) {
		return nil
	}

	body := struct {
		UserID string `json:"user_id"`
	}{UserID: userID}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/token", body)
	if err != nil {
		return err
	}

	var resp tokenResponse
	if err := c.doPublic(ctx, c.writes, req, "mint session token", &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return apperrors.Unauthorized("mint session token: backend returned an empty token")
	}
	return c.session.SetToken(ctx, resp.AccessToken)
}
