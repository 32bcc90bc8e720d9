// Package checkout orchestrates order placement: validate the form, build
// the order payload, submit it, and only then clear the cart. Failure at
// any step leaves the cart and the form exactly as they were.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/obafemitayor/user-snack/internal/cart"
	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/internal/notify"
)

// State is the submission lifecycle phase. Transitions always run
// Idle -> Validating -> Submitting -> Succeeded or Failed -> Idle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// RoutePizzas is where the user lands after a successful order.
const RoutePizzas = "/pizzas"

// ErrSubmissionInFlight is returned when placeOrder is called while a
// previous submission has not finished.
var ErrSubmissionInFlight = errors.New("an order submission is already in progress")

// ErrEmptyCart is returned when the cart has no lines to order.
var ErrEmptyCart = errors.New("cart is empty")

// OrderPlacer submits an order to the backend.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, order domain.OrderRequest) (domain.Order, error)
}

// Navigator moves the user to a new route after a successful order.
type Navigator interface {
	NavigateTo(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, route string)

// NavigateTo calls the function.
func (f NavigatorFunc) NavigateTo(ctx context.Context, route string) { f(ctx, route) }

// Workflow drives order submission for both the cart checkout and the
// single-pizza quick order.
type Workflow struct {
	cart     *cart.Store
	orders   OrderPlacer
	notifier notify.Notifier
	nav      Navigator
	logger   *slog.Logger

	mu       sync.Mutex
	state    State
	inFlight bool
}

// NewWorkflow wires a submission workflow.
func NewWorkflow(cartStore *cart.Store, orders OrderPlacer, notifier notify.Notifier, nav Navigator, logger *slog.Logger) *Workflow {
	return &Workflow{
		cart:     cartStore,
		orders:   orders,
		notifier: notifier,
		nav:      nav,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current lifecycle phase.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrSubmissionInFlight
	}
	w.inFlight = true
	w.state = StateValidating
	return nil
}

func (w *Workflow) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Workflow) warnInvalid(ctx context.Context) {
	w.notifier.Notify(ctx, notify.Notification{
		Level:       notify.LevelWarning,
		Title:       "Please check the form",
		Description: "Some fields need your attention.",
	})
}

// settle ends the attempt. Terminal outcomes surface through return values
// and notifications; the workflow itself goes straight back to idle so the
// next attempt can start.
func (w *Workflow) settle() {
	w.mu.Lock()
	w.state = StateIdle
	w.inFlight = false
	w.mu.Unlock()
}

// PlaceCartOrder validates the delivery form and submits the current cart
// as one order. On validation failure it returns the field errors and makes
// no API call. On success the cart is cleared, the user is notified, and
// navigation to the menu is triggered. On submission failure the cart and
// form survive untouched so the user can retry.
func (w *Workflow) PlaceCartOrder(ctx context.Context, form DeliveryForm) (domain.Order, map[string]string, error) {
	if err := w.begin(); err != nil {
		return domain.Order{}, nil, err
	}

	if fields := ValidateDelivery(form); len(fields) > 0 {
		w.warnInvalid(ctx)
		w.settle()
		return domain.Order{}, fields, nil
	}

	items, err := w.cart.Items(ctx)
	if err != nil {
		w.settle()
		return domain.Order{}, nil, err
	}
	if len(items) == 0 {
		w.notifier.Notify(ctx, notify.Notification{
			Level: notify.LevelWarning,
			Title: "Your cart is empty",
		})
		w.settle()
		return domain.Order{}, nil, ErrEmptyCart
	}

	request := buildOrderRequest(form.trimmed(), items)
	order, err := w.submit(ctx, request)
	if err != nil {
		return domain.Order{}, nil, err
	}

	if err := w.cart.Clear(ctx); err != nil {
		// The order is already placed; a failed local clear must not look
		// like a failed order.
		w.logger.ErrorContext(ctx, "failed to clear cart after order",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	w.celebrate(ctx, order)
	return order, nil, nil
}

// PlaceQuickOrder validates the quick-order form and submits a single pizza
// with the chosen extras, bypassing the cart entirely. The cart is left
// untouched in every outcome.
func (w *Workflow) PlaceQuickOrder(ctx context.Context, pizzaID string, extraIDs []string, form QuickOrderForm) (domain.Order, map[string]string, error) {
	if err := w.begin(); err != nil {
		return domain.Order{}, nil, err
	}

	if fields := ValidateQuickOrder(form); len(fields) > 0 {
		w.warnInvalid(ctx)
		w.settle()
		return domain.Order{}, fields, nil
	}

	delivery := form.DeliveryForm.trimmed()
	request := domain.OrderRequest{
		CustomerName:    delivery.Name,
		CustomerEmail:   delivery.Email,
		CustomerPhone:   delivery.Phone,
		CustomerAddress: delivery.Address,
		Items: []domain.OrderRequestItem{{
			PizzaID:  pizzaID,
			Quantity: domain.ClampQuantity(form.Quantity),
			Extras:   extraIDs,
		}},
	}

	order, err := w.submit(ctx, request)
	if err != nil {
		return domain.Order{}, nil, err
	}
	w.celebrate(ctx, order)
	return order, nil, nil
}

// submit performs the API call. It never retries; a duplicate POST would be
// a duplicate order.
func (w *Workflow) submit(ctx context.Context, request domain.OrderRequest) (domain.Order, error) {
	w.setState(StateSubmitting)

	order, err := w.orders.CreateOrder(ctx, request)
	if err != nil {
		w.logger.ErrorContext(ctx, "order submission failed",
			slog.String("error", err.Error()),
		)
		w.notifier.Notify(ctx, notify.Notification{
			Level:       notify.LevelError,
			Title:       "Order failed",
			Description: err.Error(),
		})
		w.settle()
		return domain.Order{}, err
	}
	return order, nil
}

func (w *Workflow) celebrate(ctx context.Context, order domain.Order) {
	w.notifier.Notify(ctx, notify.Notification{
		Level:       notify.LevelSuccess,
		Title:       "Order placed",
		Description: "Thank you for your order!",
	})
	w.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Float64("total", order.TotalAmount),
	)
	if w.nav != nil {
		w.nav.NavigateTo(ctx, RoutePizzas)
	}
	w.settle()
}

// buildOrderRequest maps cart lines into the backend's order-creation shape.
// Only ids travel on the wire; the backend re-prices every item.
func buildOrderRequest(form DeliveryForm, items []domain.LineItem) domain.OrderRequest {
	orderItems := make([]domain.OrderRequestItem, 0, len(items))
	for _, line := range items {
		extraIDs := make([]string, 0, len(line.Extras))
		for _, e := range line.Extras {
			extraIDs = append(extraIDs, e.ID)
		}
		orderItems = append(orderItems, domain.OrderRequestItem{
			PizzaID:  line.PizzaID,
			Quantity: line.Quantity,
			Extras:   extraIDs,
		})
	}
	return domain.OrderRequest{
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Address,
		Items:           orderItems,
	}
}
