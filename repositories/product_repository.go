package repositories

import (
	"context"
	"errors"
	"time"

	"intershop/config"
	"intershop/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindProducts returns one page of products matching the search string.
// sort is one of NO, ALPHA, PRICE.
func (r *ProductRepository) FindProducts(ctx context.Context, search, sort string, limit, offset int) ([]models.Product, error) {
	query := `
		SELECT id, title, description, img_path, price, count, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR title ILIKE $2 OR description ILIKE $2)
		ORDER BY
			CASE WHEN $3 = 'ALPHA' THEN title ELSE '' END,
			CASE WHEN $3 = 'PRICE' THEN price ELSE 0 END,
			id
		LIMIT $4 OFFSET $5
	`
	pattern := "%" + search + "%"

	rows, err := config.DB.Query(ctx, query, search, pattern, sort, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImgPath, &p.Price, &p.Count, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CountProducts(ctx context.Context, search string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM products
		WHERE ($1 = '' OR title ILIKE $2 OR description ILIKE $2)
	`
	pattern := "%" + search + "%"

	var total int64
	err := config.DB.QueryRow(ctx, query, search, pattern).Scan(&total)
	return total, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, title, description, img_path, price, count, created_at, updated_at
		FROM products WHERE id = $1
	`

	var p models.Product
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.ImgPath, &p.Price, &p.Count, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (title, description, img_path, price, count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		product.Title, product.Description, product.ImgPath, product.Price, product.Count, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}
