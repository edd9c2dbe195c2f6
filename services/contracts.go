package services

import (
	"context"

	"intershop/models"
)

// Store contracts consumed by the services. The repositories package
// provides the Postgres implementations; tests substitute mocks. Not-found
// is reported as repositories.ErrNotFound, anything else is infrastructure.

type ProductStore interface {
	FindProducts(ctx context.Context, search, sort string, limit, offset int) ([]models.Product, error)
	CountProducts(ctx context.Context, search string) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type CartStore interface {
	FindByUserID(ctx context.Context, userID int64) ([]models.CartItem, error)
	FindByProductAndUser(ctx context.Context, productID, userID int64) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id, quantity int64) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteAllByUserID(ctx context.Context, userID int64) error
}

type OrderStore interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	FindAllByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Cache is the best-effort read-through cache contract. Implementations
// never fail the caller: Get misses on error, mutations swallow and log.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Put(ctx context.Context, key string, value interface{})
	Evict(ctx context.Context, keys ...string)
	EvictNamespace(ctx context.Context, prefix string)
}

// PaymentGateway talks to the external balance/payment service. Charge
// returns (false, nil) on an explicit decline; connectivity failures come
// back as an error class distinct from a decline.
type PaymentGateway interface {
	Charge(ctx context.Context, userID, amount int64) (bool, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
}

// Mailer sends the best-effort order confirmation. May be nil.
type Mailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
}
