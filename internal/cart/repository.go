package cart

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mresende/storefront/internal/domain"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert replaces the quantity when the (customer, product, size) key already
// exists. The original row keeps its id and created_at so display order is
// stable.
func (r *CartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	item.ID = uuid.New().String()
	item.CreatedAt = time.Now().UTC()

	return r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (id, customer_id, product_id, size, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, product_id, size)
		DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id, created_at
	`, item.ID, item.CustomerID, item.ProductID, item.Size, item.Quantity, item.CreatedAt).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *CartRepository) Remove(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *CartRepository) ListForCustomer(ctx context.Context, customerID string) ([]domain.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.customer_id, ci.product_id, ci.size, ci.quantity, ci.created_at,
		       p.name, p.price, p.image_url
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.CustomerID, &line.ProductID, &line.Size, &line.Quantity,
			&line.CreatedAt, &line.ProductName, &line.UnitPrice, &line.ImageURL); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
