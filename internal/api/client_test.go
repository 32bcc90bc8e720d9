package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/internal/session"
	"github.com/obafemitayor/user-snack/internal/storage"
	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
	"github.com/obafemitayor/user-snack/pkg/httpclient"
	"github.com/obafemitayor/user-snack/pkg/logger"
	"github.com/obafemitayor/user-snack/pkg/pagination"
)

type testEnv struct {
	client  *Client
	session *session.Manager
	kv      *storage.MemoryStore
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.NewWithWriter("test", "error", io.Discard)
	kv := storage.NewMemoryStore()
	sess := session.NewManager(kv, log)

	// Single-attempt clients on both paths keep failure tests fast.
	doer := httpclient.New(httpclient.NoRetryConfig())
	return &testEnv{
		client:  NewClient(srv.URL, doer, doer, sess, log),
		session: sess,
		kv:      kv,
	}
}

func TestListPizzas(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pizzas/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"_id": "p1", "name": "Margherita", "price": 10.0, "description": "classic"},
			},
			"total": 11, "page": 2, "limit": 5, "pages": 3,
			"has_next": true, "has_prev": true,
		})
	}))

	page, err := env.client.ListPizzas(context.Background(), pagination.Params{Page: 2, Limit: 5})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.Equal(t, "Margherita", page.Items[0].Name)
	assert.Equal(t, 11, page.Total)
	assert.True(t, page.HasNext)
}

func TestGetPizzaNotFound(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Pizza not found"}`))
	}))

	_, err := env.client.GetPizza(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListExtrasBareArray(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"e1","name":"Cheese","price":2}]`))
	}))

	extras, err := env.client.ListExtras(context.Background())

	require.NoError(t, err)
	require.Len(t, extras, 1)
	assert.Equal(t, "Cheese", extras[0].Name)
}

func TestListExtrasEnvelope(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"_id":"e1","name":"Cheese","price":2}]}`))
	}))

	extras, err := env.client.ListExtras(context.Background())

	require.NoError(t, err)
	require.Len(t, extras, 1)
	assert.Equal(t, "e1", extras[0].ID)
}

func TestCreateOrderSendsTokenAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody domain.OrderRequest
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"o1","status":"pending","total_amount":24}`))
	}))
	require.NoError(t, env.session.SetToken(context.Background(), "tok-1"))

	order, err := env.client.CreateOrder(context.Background(), domain.OrderRequest{
		CustomerName:    "Jamie Doe",
		CustomerEmail:   "jamie@example.com",
		CustomerAddress: "1 Main St",
		Items:           []domain.OrderRequestItem{{PizzaID: "p1", Quantity: 2, Extras: []string{"e1"}}},
	})

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "p1", gotBody.Items[0].PizzaID)
}

func TestCreateOrderValidationErrorDetail(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": [{"msg": "field required"}, {"msg": "invalid email"}]}`))
	}))

	_, err := env.client.CreateOrder(context.Background(), domain.OrderRequest{})

	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "field required; invalid email")
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid token"}`))
	}))
	ctx := context.Background()
	require.NoError(t, env.session.SetToken(ctx, "stale"))

	var invalidated bool
	env.session.OnInvalidate(func(context.Context, string) { invalidated = true })

	_, err := env.client.ListOrders(ctx, pagination.DefaultParams(), StatusAll)

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.True(t, invalidated)
	assert.False(t, env.kv.Has(storage.TokenKey))
}

func TestNetworkFailureInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore

	log := logger.NewWithWriter("test", "error", io.Discard)
	kv := storage.NewMemoryStore()
	sess := session.NewManager(kv, log)
	doer := httpclient.New(httpclient.NoRetryConfig())
	client := NewClient(srv.URL, doer, doer, sess, log)

	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "tok"))

	_, err := client.ListPizzas(ctx, pagination.DefaultParams())

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.False(t, kv.Has(storage.TokenKey))
}

func TestListOrdersStatusFilter(t *testing.T) {
	var gotQuery string
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("status")
		_, _ = w.Write([]byte(`{"items":[],"total":0,"page":1,"limit":10,"pages":0}`))
	}))
	ctx := context.Background()

	_, err := env.client.ListOrders(ctx, pagination.DefaultParams(), "pending")
	require.NoError(t, err)
	assert.Equal(t, "pending", gotQuery)

	// "all" means no filter on the wire.
	_, err = env.client.ListOrders(ctx, pagination.DefaultParams(), StatusAll)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/o1/status", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "preparing", body["status"])
		_, _ = w.Write([]byte(`{"_id":"o1","status":"preparing"}`))
	}))

	order, err := env.client.UpdateOrderStatus(context.Background(), "o1", domain.StatusPreparing)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, order.Status)
}

func TestLoginStoresToken(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jamie@example.com", body["email"])
		_, _ = w.Write([]byte(`{"access_token":"fresh-token","token_type":"bearer"}`))
	}))
	ctx := context.Background()

	require.NoError(t, env.client.Login(ctx, "jamie@example.com", "secret"))

	token, err := env.session.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestLoginFailureDoesNotRunInvalidateHook(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))

	var invalidated bool
	env.session.OnInvalidate(func(context.Context, string) { invalidated = true })

	err := env.client.Login(context.Background(), "jamie@example.com", "wrong")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.False(t, invalidated)
}

func TestEnsureSessionMintsDemoToken(t *testing.T) {
	var calls int
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/auth/token", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "demo-user-123", body["user_id"])
		_, _ = w.Write([]byte(`{"access_token":"demo-token"}`))
	}))
	ctx := context.Background()

	require.NoError(t, env.client.EnsureSession(ctx, "demo-user-123"))
	assert.Equal(t, 1, calls)

	// A second call finds the persisted session and skips the mint.
	require.NoError(t, env.client.EnsureSession(ctx, "demo-user-123"))
	assert.Equal(t, 1, calls)
}
