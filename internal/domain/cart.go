package domain

import "time"

// CartItem is unique per (customer, product, size). Re-adding the same key
// replaces the quantity.
type CartItem struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Size       string    `json:"size"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// CartLine is a cart item joined with the product snapshot the storefront
// renders. The price here is the live catalog price, not a frozen one.
type CartLine struct {
	CartItem
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	ImageURL    string `json:"image_url,omitempty"`
}
