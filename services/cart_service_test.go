package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"intershop/cache"
	"intershop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartFixture() (*CartService, *mockCartStore, *mockPaymentGateway, *mockCache) {
	products := newMockProductStore(
		models.Product{ID: 1, Title: "Espresso Beans", Price: 1000},
		models.Product{ID: 2, Title: "Moka Pot", Price: 2000},
	)
	carts := &mockCartStore{}
	payments := &mockPaymentGateway{balance: 10000}
	c := newMockCache()
	return NewCartService(carts, products, payments, c), carts, payments, c
}

func TestAddProduct(t *testing.T) {
	svc, carts, _, c := cartFixture()

	require.NoError(t, svc.AddProduct(context.Background(), 7, 1))
	require.Len(t, carts.items, 1)
	assert.Equal(t, int64(1), carts.items[0].Quantity)

	// Adding the same product again increments the existing line.
	require.NoError(t, svc.AddProduct(context.Background(), 7, 1))
	require.Len(t, carts.items, 1)
	assert.Equal(t, int64(2), carts.items[0].Quantity)

	assert.Contains(t, c.evicted, cache.CartKey(7))
	assert.Contains(t, c.evictedNamespace, cache.ProductListPrefix)
}

func TestAddProductUnknownProduct(t *testing.T) {
	svc, carts, _, _ := cartFixture()

	err := svc.AddProduct(context.Background(), 7, 99)

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ID)
	assert.Empty(t, carts.items, "no line is written for an unknown product")
}

func TestAddProductConcurrentSameLine(t *testing.T) {
	svc, carts, _, _ := cartFixture()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddProduct(context.Background(), 7, 1))
		}()
	}
	wg.Wait()

	// Racing adds fold into one line instead of violating the
	// (user_id, product_id) constraint.
	require.Len(t, carts.items, 1)
	assert.Equal(t, int64(2), carts.items[0].Quantity)
}

func TestDecrementProduct(t *testing.T) {
	svc, carts, _, _ := cartFixture()
	carts.items = []models.CartItem{{ID: 1, UserID: 7, ProductID: 1, Quantity: 2}}
	carts.nextID = 1

	require.NoError(t, svc.DecrementProduct(context.Background(), 7, 1))
	require.Len(t, carts.items, 1)
	assert.Equal(t, int64(1), carts.items[0].Quantity)

	// Decrementing at quantity 1 removes the line instead of storing 0.
	require.NoError(t, svc.DecrementProduct(context.Background(), 7, 1))
	assert.Empty(t, carts.items)
}

func TestDecrementProductMissingLine(t *testing.T) {
	svc, _, _, _ := cartFixture()

	err := svc.DecrementProduct(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveProduct(t *testing.T) {
	svc, carts, _, c := cartFixture()
	carts.items = []models.CartItem{{ID: 1, UserID: 7, ProductID: 1, Quantity: 5}}
	carts.nextID = 1

	require.NoError(t, svc.RemoveProduct(context.Background(), 7, 1))
	assert.Empty(t, carts.items)
	assert.Contains(t, c.evicted, cache.CartKey(7))

	err := svc.RemoveProduct(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestGetCart(t *testing.T) {
	svc, carts, _, _ := cartFixture()
	carts.items = []models.CartItem{
		{ID: 1, UserID: 7, ProductID: 1, Quantity: 2},
		{ID: 2, UserID: 7, ProductID: 2, Quantity: 1},
	}
	carts.nextID = 2

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, view.Empty)
	assert.Equal(t, int64(4000), view.Total)
	require.Len(t, view.Items, 2)
	assert.Equal(t, int64(2000), view.Items[0].Subtotal)
	assert.Equal(t, "Moka Pot", view.Items[1].Product.Title)
	assert.True(t, view.Available)
	assert.True(t, view.CanBuy)
}

func TestGetCartInsufficientBalance(t *testing.T) {
	svc, carts, payments, _ := cartFixture()
	carts.items = []models.CartItem{{ID: 1, UserID: 7, ProductID: 2, Quantity: 1}}
	carts.nextID = 1
	payments.balance = 1999

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, view.Available)
	assert.False(t, view.CanBuy)
}

func TestGetCartBalanceServiceDown(t *testing.T) {
	svc, carts, payments, _ := cartFixture()
	carts.items = []models.CartItem{{ID: 1, UserID: 7, ProductID: 1, Quantity: 1}}
	carts.nextID = 1
	payments.balanceErr = errors.New("dial tcp: connection refused")

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err, "a balance outage must not fail the cart view")
	assert.False(t, view.Available)
	assert.False(t, view.CanBuy)
	assert.Equal(t, int64(1000), view.Total)
}

func TestGetCartEmpty(t *testing.T) {
	svc, _, _, _ := cartFixture()

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
	assert.True(t, view.Available)
}

func TestGetCartReadsThroughCache(t *testing.T) {
	svc, carts, _, c := cartFixture()
	c.seed(cache.CartKey(7), []models.CartItem{{ID: 1, UserID: 7, ProductID: 1, Quantity: 3}})
	carts.err = errors.New("store must not be hit on a cache hit")

	view, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), view.Total)
}
