package domain

// LineExtra is an add-on snapshot attached to a cart line. Name and price are
// captured at add-time and never re-fetched.
type LineExtra struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LineItem is one entry in the cart: a pizza, its quantity, and chosen
// extras, with its own identity independent of the underlying pizza.
type LineItem struct {
	ID       string      `json:"id"`
	PizzaID  string      `json:"pizzaId"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Quantity int         `json:"quantity"`
	Extras   []LineExtra `json:"extras"`
}

// Total returns (price + sum of extra prices) * quantity for this line.
func (l LineItem) Total() float64 {
	var extrasSum float64
	for _, e := range l.Extras {
		extrasSum += e.Price
	}
	return (l.Price + extrasSum) * float64(l.Quantity)
}

// Subtotal sums the line totals of all items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, l := range items {
		sum += l.Total()
	}
	return sum
}

// ClampQuantity coerces a requested quantity to the valid range. A line with
// quantity below 1 is invalid and is corrected rather than rejected.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
