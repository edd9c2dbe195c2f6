package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"intershop/models"
	"intershop/repositories"
)

// Hand-written mocks for the store, cache, and payment contracts.

type mockCartStore struct {
	mu     sync.Mutex
	items  []models.CartItem
	nextID int64
	err    error
}

func (m *mockCartStore) FindByUserID(_ context.Context, userID int64) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.CartItem{}
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockCartStore) FindByProductAndUser(_ context.Context, productID, userID int64) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, item := range m.items {
		if item.ProductID == productID && item.UserID == userID {
			found := item
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCartStore) Create(_ context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	// Upsert semantics, matching the repository's ON CONFLICT insert.
	for i := range m.items {
		if m.items[i].UserID == item.UserID && m.items[i].ProductID == item.ProductID {
			m.items[i].Quantity += item.Quantity
			item.ID = m.items[i].ID
			item.Quantity = m.items[i].Quantity
			return nil
		}
	}
	m.nextID++
	item.ID = m.nextID
	m.items = append(m.items, *item)
	return nil
}

func (m *mockCartStore) UpdateQuantity(_ context.Context, id, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Quantity = quantity
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockCartStore) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockCartStore) DeleteAllByUserID(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.items[:0]
	for _, item := range m.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

type mockProductStore struct {
	mu        sync.Mutex
	products  map[int64]models.Product
	nextID    int64
	findCalls int
	listCalls int
	err       error
}

func newMockProductStore(products ...models.Product) *mockProductStore {
	m := &mockProductStore{products: map[int64]models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
	}
	return m
}

func (m *mockProductStore) FindProducts(_ context.Context, search, _ string, limit, offset int) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Product{}
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.products[id]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(p.Title, search) && !strings.Contains(p.Description, search) {
			continue
		}
		out = append(out, p)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockProductStore) CountProducts(_ context.Context, search string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var total int64
	for _, p := range m.products {
		if search == "" || strings.Contains(p.Title, search) || strings.Contains(p.Description, search) {
			total++
		}
	}
	return total, nil
}

func (m *mockProductStore) FindByID(_ context.Context, id int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (m *mockProductStore) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = *product
	return nil
}

type mockOrderStore struct {
	mu        sync.Mutex
	orders    map[int64]models.Order
	nextID    int64
	createErr error
	err       error
	// carts, when set, is emptied for the order's user on a successful
	// CreateWithItems, mirroring the transactional cart cleanup.
	carts *mockCartStore
}

func newMockOrderStore(carts *mockCartStore) *mockOrderStore {
	return &mockOrderStore{orders: map[int64]models.Order{}, carts: carts}
}

func (m *mockOrderStore) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	m.mu.Lock()
	if m.createErr != nil {
		m.mu.Unlock()
		return m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	for i := range items {
		items[i].OrderID = order.ID
		items[i].ID = int64(i + 1)
	}
	order.Items = items
	m.orders[order.ID] = *order
	m.mu.Unlock()

	if m.carts != nil {
		return m.carts.DeleteAllByUserID(ctx, order.UserID)
	}
	return nil
}

func (m *mockOrderStore) FindAllByUserID(_ context.Context, userID int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	// Newest first, matching the repository's created_at DESC ordering.
	out := []models.Order{}
	for id := m.nextID; id >= 1; id-- {
		o, ok := m.orders[id]
		if ok && o.UserID == userID {
			o.Items = nil
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) FindByID(_ context.Context, id int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	o.Items = nil
	return &o, nil
}

func (m *mockOrderStore) FindItemsByOrderID(_ context.Context, orderID int64) ([]models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[orderID]
	if !ok {
		return []models.OrderItem{}, nil
	}
	// The order_items table stores no display columns; reads come back
	// undecorated and are re-joined from the catalog by the service.
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	for i := range items {
		items[i].Title = ""
		items[i].Description = ""
		items[i].ImgPath = ""
	}
	return items, nil
}

type mockUserStore struct {
	mu    sync.Mutex
	users map[int64]models.User
	err   error
}

func newMockUserStore(users ...models.User) *mockUserStore {
	m := &mockUserStore{users: map[int64]models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	user.ID = int64(len(m.users) + 1)
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

// mockCache stores JSON-encoded values and records evictions so tests can
// assert on invalidation behavior.
type mockCache struct {
	mu               sync.Mutex
	data             map[string][]byte
	evicted          []string
	evictedNamespace []string
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) Get(_ context.Context, key string, dest interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (m *mockCache) Put(_ context.Context, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.data[key] = b
}

func (m *mockCache) Evict(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
		m.evicted = append(m.evicted, key)
	}
}

func (m *mockCache) EvictNamespace(_ context.Context, prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	m.evictedNamespace = append(m.evictedNamespace, prefix)
}

func (m *mockCache) seed(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, _ := json.Marshal(value)
	m.data[key] = b
}

type mockMailer struct {
	mu   sync.Mutex
	to   []string
	sent []models.Order
	err  error
}

func (m *mockMailer) SendOrderConfirmation(toEmail string, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, toEmail)
	m.sent = append(m.sent, *order)
	return m.err
}

type mockPaymentGateway struct {
	mu          sync.Mutex
	chargeCalls int
	lastUserID  int64
	lastAmount  int64
	declined    bool
	chargeErr   error
	balance     int64
	balanceErr  error
}

func (m *mockPaymentGateway) Charge(_ context.Context, userID, amount int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chargeCalls++
	m.lastUserID = userID
	m.lastAmount = amount
	if m.chargeErr != nil {
		return false, m.chargeErr
	}
	return !m.declined, nil
}

func (m *mockPaymentGateway) GetBalance(_ context.Context, _ int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balanceErr != nil {
		return 0, m.balanceErr
	}
	return m.balance, nil
}

func (m *mockPaymentGateway) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chargeCalls
}
