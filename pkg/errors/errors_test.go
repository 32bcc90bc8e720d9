package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFound("pizza", "p1"), ErrNotFound)
	assert.ErrorIs(t, InvalidInput("bad"), ErrInvalidInput)
	assert.ErrorIs(t, Unauthorized("no"), ErrUnauthorized)
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)
	assert.ErrorIs(t, Conflict("dup"), ErrConflict)
	assert.ErrorIs(t, Unavailable("down"), ErrUnavailable)
	assert.ErrorIs(t, Network(errors.New("refused")), ErrNetwork)
}

func TestNetworkPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")

	err := Network(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(Unauthorized("x")))
	assert.True(t, IsAuthError(Forbidden("x")))
	assert.True(t, IsAuthError(fmt.Errorf("wrapped: %w", ErrUnauthorized)))
	assert.False(t, IsAuthError(NotFound("pizza", "p1")))
	assert.False(t, IsAuthError(nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("pizza", "p1")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("x: %w", ErrInvalidInput)))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Network(errors.New("refused"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything")))
}

func TestWrapKeepsChain(t *testing.T) {
	err := Wrap(ErrNotFound, "load cart")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "load cart")
}
