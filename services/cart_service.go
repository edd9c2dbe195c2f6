package services

import (
	"context"
	"errors"
	"log"

	"intershop/cache"
	"intershop/models"
	"intershop/repositories"
)

type CartService struct {
	carts    CartStore
	products ProductStore
	payments PaymentGateway
	cache    Cache
}

func NewCartService(carts CartStore, products ProductStore, payments PaymentGateway, c Cache) *CartService {
	return &CartService{carts: carts, products: products, payments: payments, cache: c}
}

// AddProduct upserts a cart line: increments the quantity if the user
// already has the product, creates a line with quantity 1 otherwise.
// The product must exist; adding an unknown id is a not-found error, not
// a constraint violation from the store.
func (s *CartService) AddProduct(ctx context.Context, userID, productID int64) error {
	if _, err := s.productByID(ctx, productID); err != nil {
		return err
	}

	item, err := s.carts.FindByProductAndUser(ctx, productID, userID)
	switch {
	case err == nil:
		if err := s.carts.UpdateQuantity(ctx, item.ID, item.Quantity+1); err != nil {
			return err
		}
	case errors.Is(err, repositories.ErrNotFound):
		item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
		if err := s.carts.Create(ctx, item); err != nil {
			return err
		}
	default:
		return err
	}

	s.evictCartCaches(ctx, userID)
	return nil
}

// DecrementProduct lowers the line quantity by one and deletes the line
// when it would reach zero. Quantity is never stored at 0.
func (s *CartService) DecrementProduct(ctx context.Context, userID, productID int64) error {
	item, err := s.carts.FindByProductAndUser(ctx, productID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrLineNotFound
	}
	if err != nil {
		return err
	}

	if item.Quantity > 1 {
		err = s.carts.UpdateQuantity(ctx, item.ID, item.Quantity-1)
	} else {
		err = s.carts.DeleteByID(ctx, item.ID)
	}
	if err != nil {
		return err
	}

	s.evictCartCaches(ctx, userID)
	return nil
}

// RemoveProduct deletes the line outright regardless of quantity.
func (s *CartService) RemoveProduct(ctx context.Context, userID, productID int64) error {
	item, err := s.carts.FindByProductAndUser(ctx, productID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrLineNotFound
	}
	if err != nil {
		return err
	}

	if err := s.carts.DeleteByID(ctx, item.ID); err != nil {
		return err
	}

	s.evictCartCaches(ctx, userID)
	return nil
}

// GetCart renders the cart view: lines decorated with catalog data, the
// running total, and whether the user's balance covers it. A balance
// service outage marks the view unavailable instead of failing the read.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.CartView, error) {
	items, err := s.loadCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &models.CartView{Items: []models.CartLine{}, Empty: true, Available: true}, nil
	}

	lines := make([]models.CartLine, 0, len(items))
	var total int64
	for _, item := range items {
		product, err := s.productByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		subtotal := product.Price * item.Quantity
		total += subtotal
		lines = append(lines, models.CartLine{Product: *product, Quantity: item.Quantity, Subtotal: subtotal})
	}

	view := &models.CartView{Items: lines, Total: total, Available: true}

	balance, err := s.payments.GetBalance(ctx, userID)
	if err != nil {
		log.Printf("cart: balance lookup for user %d failed: %v", userID, err)
		view.Available = false
		return view, nil
	}
	view.CanBuy = balance >= total
	return view, nil
}

func (s *CartService) loadCartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	key := cache.CartKey(userID)

	var cached []models.CartItem
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, key, items)
	return items, nil
}

func (s *CartService) productByID(ctx context.Context, id int64) (*models.Product, error) {
	key := cache.ProductKey(id)

	var cached models.Product
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &ProductNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, key, product)
	return product, nil
}

// evictCartCaches applies the coarse invalidation policy: the user's cart
// key plus the whole product-list namespace on every cart mutation.
func (s *CartService) evictCartCaches(ctx context.Context, userID int64) {
	s.cache.Evict(ctx, cache.CartKey(userID))
	s.cache.EvictNamespace(ctx, cache.ProductListPrefix)
}
