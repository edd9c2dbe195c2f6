package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"intershop/cache"
	"intershop/models"
	"intershop/repositories"

	"github.com/google/uuid"
)

// OrderService orchestrates checkout: it turns a mutable cart into an
// immutable order while debiting the user's balance on the payment service
// and keeping the cache consistent with the store.
type OrderService struct {
	orders   OrderStore
	carts    CartStore
	products ProductStore
	users    UserStore
	payments PaymentGateway
	cache    Cache
	mailer   Mailer
	locks    *userLocks
}

func NewOrderService(orders OrderStore, carts CartStore, products ProductStore, users UserStore, payments PaymentGateway, c Cache, mailer Mailer) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		users:    users,
		payments: payments,
		cache:    c,
		mailer:   mailer,
		locks:    newUserLocks(),
	}
}

// PurchaseCart converts the user's cart into an order:
//
//  1. load the cart (through cache); empty cart fails with ErrEmptyCart
//  2. resolve every referenced product (through cache); a vanished product
//     fails with ErrInconsistentCart before anything is written
//  3. compute the total from live prices, snapshotting them per line
//  4. charge the payment service; a decline and an unreachable service are
//     distinct failures, and nothing has been written yet either way
//  5. persist {order, order items, cart cleanup} as one transaction; a
//     failure here rolls everything back but the payment has already been
//     captured, so it is logged for reconciliation
//  6. evict the user's cart key and the product-list namespace
//
// Checkouts are serialized per user, so a cart emptied by a concurrent
// purchase is seen as empty in step 1 rather than charged twice.
func (s *OrderService) PurchaseCart(ctx context.Context, userID int64) (int64, error) {
	lock := s.locks.lock(userID)
	defer lock.Unlock()

	cartItems, err := s.loadCartItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(cartItems) == 0 {
		return 0, ErrEmptyCart
	}

	orderItems := make([]models.OrderItem, 0, len(cartItems))
	var totalSum int64
	for _, item := range cartItems {
		product, err := s.productByID(ctx, item.ProductID)
		if err != nil {
			var notFound *ProductNotFoundError
			if errors.As(err, &notFound) {
				return 0, fmt.Errorf("%w: product %d", ErrInconsistentCart, item.ProductID)
			}
			return 0, err
		}

		totalSum += product.Price * item.Quantity
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       product.ID,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
			Title:           product.Title,
		})
	}

	accepted, err := s.payments.Charge(ctx, userID, totalSum)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPaymentServiceUnavailable, err)
	}
	if !accepted {
		return 0, ErrPaymentDeclined
	}

	// Payment is captured. From here the write set must run to completion
	// even if the caller disconnects.
	writeCtx := context.WithoutCancel(ctx)

	order := &models.Order{
		OrderNumber: uuid.NewString(),
		UserID:      userID,
		TotalSum:    totalSum,
		CreatedAt:   time.Now(),
	}

	if err := s.orders.CreateWithItems(writeCtx, order, orderItems); err != nil {
		perr := &PersistenceError{UserID: userID, Amount: totalSum, Err: err}
		log.Printf("RECONCILIATION REQUIRED: %v", perr)
		return 0, perr
	}

	s.cache.Evict(writeCtx, cache.CartKey(userID))
	s.cache.EvictNamespace(writeCtx, cache.ProductListPrefix)

	s.sendConfirmation(writeCtx, order)

	return order.ID, nil
}

// FindAllWithItemsAndProducts lists the user's orders with their items
// decorated from the catalog (through cache). PriceAtPurchase stays
// authoritative; current product data only fills in display metadata.
func (s *OrderService) FindAllWithItemsAndProducts(ctx context.Context, userID int64) ([]models.Order, error) {
	orders, err := s.orders.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.decoratedItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &OrderNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}

	items, err := s.decoratedItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *OrderService) decoratedItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	items, err := s.orders.FindItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		product, err := s.productByID(ctx, items[i].ProductID)
		if err != nil {
			// A product deleted after purchase leaves the line undecorated;
			// the snapshot price is still correct.
			var notFound *ProductNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		items[i].Title = product.Title
		items[i].Description = product.Description
		items[i].ImgPath = product.ImgPath
	}
	return items, nil
}

func (s *OrderService) loadCartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
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

func (s *OrderService) productByID(ctx context.Context, id int64) (*models.Product, error) {
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

// sendConfirmation emails the order summary, best-effort.
func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.mailer == nil {
		return
	}

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		log.Printf("order %d: could not resolve user for confirmation email: %v", order.ID, err)
		return
	}
	if err := s.mailer.SendOrderConfirmation(user.Email, order); err != nil {
		log.Printf("order %d: confirmation email failed: %v", order.ID, err)
	}
}
