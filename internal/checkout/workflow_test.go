package checkout

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obafemitayor/user-snack/internal/cart"
	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/internal/notify"
	"github.com/obafemitayor/user-snack/internal/storage"
	"github.com/obafemitayor/user-snack/pkg/logger"
)

type stubPlacer struct {
	mu      sync.Mutex
	calls   int
	lastReq domain.OrderRequest
	order   domain.Order
	err     error
	block   chan struct{}
}

func (s *stubPlacer) CreateOrder(_ context.Context, req domain.OrderRequest) (domain.Order, error) {
	s.mu.Lock()
	s.calls++
	s.lastReq = req
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if s.err != nil {
		return domain.Order{}, s.err
	}
	return s.order, nil
}

func (s *stubPlacer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fixture struct {
	workflow *Workflow
	cart     *cart.Store
	kv       *storage.MemoryStore
	placer   *stubPlacer
	notes    *notify.Recorder
	routes   []string
}

func newFixture(t *testing.T, placer *stubPlacer) *fixture {
	t.Helper()
	log := logger.NewWithWriter("test", "error", io.Discard)
	kv := storage.NewMemoryStore()
	cartStore := cart.NewStore(kv, log)
	notes := &notify.Recorder{}

	f := &fixture{cart: cartStore, kv: kv, placer: placer, notes: notes}
	nav := NavigatorFunc(func(_ context.Context, route string) {
		f.routes = append(f.routes, route)
	})
	f.workflow = NewWorkflow(cartStore, placer, notes, nav, log)
	return f
}

func (f *fixture) addLine(t *testing.T) domain.LineItem {
	t.Helper()
	line, err := f.cart.Add(context.Background(),
		domain.Pizza{ID: "p1", Name: "Margherita", Price: 10}, 2,
		[]string{"e1"}, []domain.Extra{{ID: "e1", Name: "Cheese", Price: 2}})
	require.NoError(t, err)
	return line
}

func TestPlaceCartOrderSuccess(t *testing.T) {
	placer := &stubPlacer{order: domain.Order{ID: "o1", TotalAmount: 24, Status: domain.StatusPending}}
	f := newFixture(t, placer)
	f.addLine(t)
	ctx := context.Background()

	order, fields, err := f.workflow.PlaceCartOrder(ctx, validForm())

	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.Equal(t, "o1", order.ID)

	// The cart is gone, snapshot key included.
	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, f.kv.Has(storage.CartKey))

	last, ok := f.notes.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelSuccess, last.Level)
	assert.Equal(t, []string{RoutePizzas}, f.routes)
	assert.Equal(t, StateIdle, f.workflow.State())
}

func TestPlaceCartOrderBuildsWirePayload(t *testing.T) {
	placer := &stubPlacer{order: domain.Order{ID: "o1"}}
	f := newFixture(t, placer)
	f.addLine(t)

	_, _, err := f.workflow.PlaceCartOrder(context.Background(), validForm())
	require.NoError(t, err)

	req := placer.lastReq
	assert.Equal(t, "Jamie Doe", req.CustomerName)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "p1", req.Items[0].PizzaID)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, []string{"e1"}, req.Items[0].Extras)
}

func TestPlaceCartOrderValidationFailureSkipsAPI(t *testing.T) {
	placer := &stubPlacer{}
	f := newFixture(t, placer)
	f.addLine(t)

	form := validForm()
	form.Email = "a@b"
	order, fields, err := f.workflow.PlaceCartOrder(context.Background(), form)

	require.NoError(t, err)
	assert.Contains(t, fields, "email")
	assert.Zero(t, order.ID)
	assert.Zero(t, placer.callCount())

	last, ok := f.notes.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelWarning, last.Level)

	// Cart untouched.
	items, err := f.cart.Items(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPlaceCartOrderEmptyCart(t *testing.T) {
	placer := &stubPlacer{}
	f := newFixture(t, placer)

	_, _, err := f.workflow.PlaceCartOrder(context.Background(), validForm())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, placer.callCount())

	last, ok := f.notes.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelWarning, last.Level)
}

func TestPlaceCartOrderFailurePreservesCart(t *testing.T) {
	placer := &stubPlacer{err: errors.New("connection refused")}
	f := newFixture(t, placer)
	line := f.addLine(t)
	ctx := context.Background()

	_, fields, err := f.workflow.PlaceCartOrder(ctx, validForm())

	require.Error(t, err)
	assert.Empty(t, fields)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, line.ID, items[0].ID)
	assert.True(t, f.kv.Has(storage.CartKey))

	last, ok := f.notes.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelError, last.Level)
	assert.Empty(t, f.routes)
	assert.Equal(t, StateIdle, f.workflow.State())
}

func TestPlaceCartOrderRejectsConcurrentSubmission(t *testing.T) {
	placer := &stubPlacer{block: make(chan struct{}), order: domain.Order{ID: "o1"}}
	f := newFixture(t, placer)
	f.addLine(t)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = f.workflow.PlaceCartOrder(ctx, validForm())
	}()

	// Wait until the first submission is in flight.
	require.Eventually(t, func() bool {
		return f.workflow.State() == StateSubmitting
	}, 2*time.Second, time.Millisecond)

	_, _, err := f.workflow.PlaceCartOrder(ctx, validForm())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(placer.block)
	<-done
	assert.Equal(t, 1, placer.callCount())
}

func TestPlaceQuickOrderSuccessLeavesCartAlone(t *testing.T) {
	placer := &stubPlacer{order: domain.Order{ID: "o2", TotalAmount: 12}}
	f := newFixture(t, placer)
	f.addLine(t)
	ctx := context.Background()

	form := QuickOrderForm{DeliveryForm: validForm(), Quantity: 1}
	order, fields, err := f.workflow.PlaceQuickOrder(ctx, "p9", []string{"e1"}, form)

	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.Equal(t, "o2", order.ID)

	req := placer.lastReq
	require.Len(t, req.Items, 1)
	assert.Equal(t, "p9", req.Items[0].PizzaID)

	// Quick order bypasses the cart entirely.
	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPlaceQuickOrderValidationFailure(t *testing.T) {
	placer := &stubPlacer{}
	f := newFixture(t, placer)

	form := QuickOrderForm{DeliveryForm: validForm(), Quantity: 0}
	_, fields, err := f.workflow.PlaceQuickOrder(context.Background(), "p1", nil, form)

	require.NoError(t, err)
	assert.Contains(t, fields, "quantity")
	assert.Zero(t, placer.callCount())
}
