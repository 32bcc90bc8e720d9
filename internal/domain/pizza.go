package domain

// Pizza is a catalog entry served by the pizzeria API. Prices are decimal
// amounts in the store currency, exactly as the API returns them.
type Pizza struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
}
