package domain

import "time"

// Product is owned by catalog management. The checkout path reads price and
// stock and mutates only stock.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type StockLevel struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}
