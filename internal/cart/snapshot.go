package cart

import (
	"encoding/json"
	"strconv"

	"github.com/obafemitayor/user-snack/internal/domain"
)

// decodeSnapshot parses a persisted cart snapshot. The decoder is lenient
// the way the original storefront was: a field of the wrong type degrades
// to a zero value for that field, and only a snapshot that is not a JSON
// array at all resets the cart to empty.
func decodeSnapshot(data []byte) []domain.LineItem {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	items := make([]domain.LineItem, 0, len(raw))
	for _, entry := range raw {
		item := domain.LineItem{
			ID:       coerceString(entry["id"]),
			PizzaID:  coerceString(entry["pizzaId"]),
			Name:     coerceString(entry["name"]),
			Price:    coerceNumber(entry["price"]),
			Quantity: domain.ClampQuantity(coerceInt(entry["quantity"])),
			Extras:   coerceExtras(entry["extras"]),
		}
		items = append(items, item)
	}
	return items
}

func encodeSnapshot(items []domain.LineItem) ([]byte, error) {
	return json.Marshal(items)
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v any) int {
	return int(coerceNumber(v))
}

func coerceExtras(v any) []domain.LineExtra {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	extras := make([]domain.LineExtra, 0, len(raw))
	for _, e := range raw {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		extras = append(extras, domain.LineExtra{
			ID:    coerceString(entry["_id"]),
			Name:  coerceString(entry["name"]),
			Price: coerceNumber(entry["price"]),
		})
	}
	return extras
}
