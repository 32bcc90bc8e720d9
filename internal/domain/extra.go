package domain

// Extra is an optional add-on priced independently of the base pizza.
type Extra struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FindExtra returns the extra with the given id from the catalog, or false
// when the id is unknown.
func FindExtra(catalog []Extra, id string) (Extra, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}

// ResolveExtras maps selected extra ids to catalog entries. Unknown ids are
// silently dropped; the catalog snapshot the caller holds may be stale and a
// missing add-on is not worth failing the whole add.
func ResolveExtras(catalog []Extra, selectedIDs []string) []Extra {
	resolved := make([]Extra, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if e, ok := FindExtra(catalog, id); ok {
			resolved = append(resolved, e)
		}
	}
	return resolved
}
