package domain

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order. The backend owns the
// transition rules; the client only names and displays the states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Color returns the display color for a status badge. Unknown statuses
// render gray.
func (s OrderStatus) Color() string {
	switch s {
	case StatusPending:
		return "yellow"
	case StatusConfirmed:
		return "blue"
	case StatusPreparing:
		return "orange"
	case StatusReady:
		return "purple"
	case StatusDelivered:
		return "green"
	case StatusCancelled:
		return "red"
	default:
		return "gray"
	}
}

// OrderItemExtra is an add-on echoed back by the API on a created order.
type OrderItemExtra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItem is one priced line of a created order, as echoed by the API.
type OrderItem struct {
	PizzaID    string           `json:"pizza_id"`
	PizzaName  string           `json:"pizza_name"`
	PizzaPrice float64          `json:"pizza_price"`
	Extras     []OrderItemExtra `json:"extras"`
	Quantity   int              `json:"quantity"`
	ItemTotal  float64          `json:"item_total"`
}

// Order is a placed order as returned by the API.
type Order struct {
	ID              string      `json:"_id"`
	UserID          string      `json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone,omitempty"`
	CustomerAddress string      `json:"customer_address"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderRequestItem is one line of an outbound order-creation request.
// Extras are sent as bare ids; the backend re-resolves names and prices.
type OrderRequestItem struct {
	PizzaID  string   `json:"pizza_id"`
	Quantity int      `json:"quantity"`
	Extras   []string `json:"extras"`
}

// OrderRequest is the outbound wire shape for POST /orders/. It is
// constructed per submission and never stored.
type OrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	CustomerAddress string             `json:"customer_address"`
	Items           []OrderRequestItem `json:"items"`
}
