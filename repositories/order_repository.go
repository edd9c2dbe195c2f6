package repositories

import (
	"context"
	"errors"
	"fmt"

	"intershop/config"
	"intershop/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateWithItems persists the checkout write set as one transaction:
// the order row, its items, and the removal of the user's cart lines.
// The cart rows are locked with FOR UPDATE first so a concurrent checkout
// in another process cannot claim the same cart; if the cart has already
// been emptied the transaction rolls back and nothing is written.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id FROM cart_items WHERE user_id = $1 FOR UPDATE`, order.UserID)
	if err != nil {
		return err
	}

	lockedLines := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		lockedLines++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if lockedLines == 0 {
		return fmt.Errorf("cart for user %d already emptied by a concurrent checkout", order.UserID)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, total_sum, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		order.OrderNumber, order.UserID, order.TotalSum, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].PriceAtPurchase,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	order.Items = items
	return nil
}

func (r *OrderRepository) FindAllByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `
		SELECT id, order_number, user_id, total_sum, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`

	rows, err := config.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalSum, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT id, order_number, user_id, total_sum, created_at FROM orders WHERE id = $1`

	var o models.Order
	err := config.DB.QueryRow(ctx, query, id).Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalSum, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price_at_purchase
		FROM order_items WHERE order_id = $1 ORDER BY id
	`

	rows, err := config.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
