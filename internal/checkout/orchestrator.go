package checkout

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mresende/storefront/internal/domain"
)

// Orchestrator materializes a customer's cart into an order inside a single
// database transaction: load cart, freeze unit prices, insert the order and
// its items, decrement stock, clear the cart. Any failure rolls the whole
// unit back, so no observer ever sees an order without items, a partial
// stock change, or a half-cleared cart.
type Orchestrator struct {
	db *sql.DB
}

func NewOrchestrator(db *sql.DB) *Orchestrator {
	return &Orchestrator{db: db}
}

type cartLine struct {
	productID string
	size      string
	quantity  int
	unitPrice int64
}

func (o *Orchestrator) Checkout(ctx context.Context, customerID string) (*domain.Order, error) {
	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	lines, err := loadCart(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	for _, line := range lines {
		order.Total += int64(line.quantity) * line.unitPrice
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: line.productID,
			Quantity:  line.quantity,
			Size:      line.size,
			Price:     line.unitPrice,
		})
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, order.ID, order.CustomerID, order.Status, order.Total, order.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, size, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), order.ID, item.ProductID, item.Quantity, item.Size, item.Price)
		if err != nil {
			return nil, err
		}
	}

	// Compare-and-decrement serializes concurrent checkouts on the same
	// product: the row lock taken by the first UPDATE holds until commit, and
	// the guard keeps stock from ever going negative.
	for _, item := range order.Items {
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $2
			WHERE id = $1 AND stock >= $2
		`, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}

		if rowsAffected == 0 {
			return nil, &domain.InsufficientStockError{ProductID: item.ProductID}
		}
	}

	// Cart clearing is last and only on full success; a failed checkout
	// leaves the cart intact for retry.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cart_items WHERE customer_id = $1
	`, customerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return order, nil
}

func loadCart(ctx context.Context, tx *sql.Tx, customerID string) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.size, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var lines []cartLine
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.productID, &line.size, &line.quantity, &line.unitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
