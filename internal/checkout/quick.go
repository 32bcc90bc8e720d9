package checkout

import (
	"math"

	"github.com/obafemitayor/user-snack/internal/domain"
)

// ExtraSelection is the quick-order pick-list of extras. Selecting an extra
// twice keeps a single entry; order of first selection is preserved.
type ExtraSelection struct {
	ids []string
}

// Add selects an extra id. Duplicates are ignored.
func (s *ExtraSelection) Add(id string) {
	for _, existing := range s.ids {
		if existing == id {
			return
		}
	}
	s.ids = append(s.ids, id)
}

// Remove deselects an extra id. Removing an unselected id is a no-op.
func (s *ExtraSelection) Remove(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Has reports whether the id is currently selected.
func (s *ExtraSelection) Has(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in selection order.
func (s *ExtraSelection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// QuickTotal prices a quick order before submission: every selected extra
// applies to every pizza in the quantity. Rounded to cents for display; the
// backend recomputes the authoritative total.
func QuickTotal(pizza domain.Pizza, extras []domain.Extra, quantity int) float64 {
	quantity = domain.ClampQuantity(quantity)

	total := pizza.Price * float64(quantity)
	for _, e := range extras {
		total += e.Price * float64(quantity)
	}
	return math.Round(total*100) / 100
}
