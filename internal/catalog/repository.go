package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/mresende/storefront/internal/domain"
)

// ProductRepository is read-only. Product rows are owned by catalog
// management; the only storefront-side mutation of products is the stock
// decrement inside the checkout transaction.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, category, subcategory, image_url, sizes, stock, active, created_at
		FROM products
		WHERE active
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Subcategory,
			&p.ImageURL, pq.Array(&p.Sizes), &p.Stock, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, category, subcategory, image_url, sizes, stock, active, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Subcategory,
		&p.ImageURL, pq.Array(&p.Sizes), &p.Stock, &p.Active, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

func (r *ProductRepository) CurrentStock(ctx context.Context, productID string) (*domain.StockLevel, error) {
	level := &domain.StockLevel{ProductID: productID}

	err := r.db.QueryRowContext(ctx, `
		SELECT stock FROM products WHERE id = $1
	`, productID).Scan(&level.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return level, nil
}
