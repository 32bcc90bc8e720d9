// Package storage provides the local key-value store backing the cart
// snapshot and the session token. It is the Go analog of the browser's
// localStorage: a handful of fixed keys, whole-value reads and writes,
// and no schema.
package storage

import "context"

// Well-known keys. The names are carried over from the original storefront
// so a value written by one build stays readable by the next.
const (
	CartKey  = "usersnap_cart_v1"
	TokenKey = "usersnap_auth_token"
)

// KV is a minimal key-value store. Get returns an error wrapping
// apperrors.ErrNotFound when the key is absent. Delete of an absent key is
// a no-op.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
