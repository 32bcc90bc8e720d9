// Package session manages the bearer token the storefront uses against the
// ordering API. The token is an opaque credential persisted under a fixed
// storage key; the manager only peeks inside it for display purposes and
// never verifies the signature, that is the server's job.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/obafemitayor/user-snack/internal/storage"
	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
)

// InvalidateHook is called after the token has been cleared because the API
// rejected it or could not be reached. The storefront uses it to redirect
// the user to the login screen.
type InvalidateHook func(ctx context.Context, reason string)

// Manager owns the persisted session token.
type Manager struct {
	store  storage.KV
	logger *slog.Logger

	mu           sync.RWMutex
	onInvalidate InvalidateHook
}

// NewManager creates a session manager over the given store.
func NewManager(store storage.KV, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// OnInvalidate registers the hook run after an invalidation. Only one hook
// is kept; registering again replaces it.
func (m *Manager) OnInvalidate(hook InvalidateHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onInvalidate = hook
}

// Token returns the persisted token, or an error wrapping
// apperrors.ErrUnauthorized when no session exists.
func (m *Manager) Token(ctx context.Context) (string, error) {
	data, err := m.store.Get(ctx, storage.TokenKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.Unauthorized("no active session")
		}
		return "", fmt.Errorf("read session token: %w", err)
	}
	return string(data), nil
}

// HasSession reports whether a token is currently persisted.
func (m *Manager) HasSession(ctx context.Context) bool {
	_, err := m.store.Get(ctx, storage.TokenKey)
	return err == nil
}

// SetToken persists a new token, replacing any existing session.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, storage.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return nil
}

// Clear removes the persisted token without running the invalidation hook.
// Used for explicit logout.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.TokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Invalidate clears the token and runs the registered hook. Called when the
// API answers 401 or 403, or when it cannot be reached at all; either way
// the stored credential is treated as unusable.
func (m *Manager) Invalidate(ctx context.Context, reason string) {
	if err := m.store.Delete(ctx, storage.TokenKey); err != nil {
		m.logger.ErrorContext(ctx, "failed to clear session token",
			slog.String("error", err.Error()))
	}
	m.logger.InfoContext(ctx, "session invalidated", slog.String("reason", reason))

	m.mu.RLock()
	hook := m.onInvalidate
	m.mu.RUnlock()
	if hook != nil {
		hook(ctx, reason)
	}
}

// Claims is the subset of token claims shown to the user.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims decodes the persisted token without verifying its signature and
// returns the subject and expiry for display.
func (m *Manager) Claims(ctx context.Context) (Claims, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return Claims{}, err
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, apperrors.Unauthorized("session token is not a valid JWT")
	}

	var claims Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
