package models

// Product is the stored snapshot of a tracked catalog item, keyed by artikul.
type Product struct {
	ID            int     `json:"id,omitempty"`
	Artikul       string  `json:"artikul"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Rating        float64 `json:"rating"`
	TotalQuantity int     `json:"total_quantity"`
}

// Subscription marks an artikul for periodic refresh.
type Subscription struct {
	ID      int    `json:"id,omitempty"`
	Artikul string `json:"artikul"`
}
