package product

import "time"

// Product represents a priceable item in the catalog. Products are created
// once and never updated; order items snapshot the price at order time.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	PriceCents  int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
