package pagination

import (
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings. The
// pizzeria API paginates with page (1-based) and limit (max 100), so the
// admin console uses the same names.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultParams returns the API's pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:  1,
		Limit: 10,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// Out-of-range values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= 100 {
			p.Limit = v
		}
	}

	return p
}
