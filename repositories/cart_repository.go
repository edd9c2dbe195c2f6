package repositories

import (
	"context"
	"errors"
	"time"

	"intershop/config"
	"intershop/models"

	"github.com/jackc/pgx/v5"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID int64) ([]models.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = $1 ORDER BY id
	`

	rows, err := config.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) FindByProductAndUser(ctx context.Context, productID, userID int64) (*models.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE product_id = $1 AND user_id = $2
	`

	var item models.CartItem
	err := config.DB.QueryRow(ctx, query, productID, userID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a cart line. Two concurrent adds of the same product race
// past the service's find-then-create, so the insert folds into the
// existing line instead of tripping the (user_id, product_id) constraint.
func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING id, quantity, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		item.UserID, item.ProductID, item.Quantity, now, now,
	).Scan(&item.ID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	query := `UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3`
	tag, err := config.DB.Exec(ctx, query, quantity, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := config.DB.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
