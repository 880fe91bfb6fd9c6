package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/repository"
)

// memStore backs all the in-memory repositories so a fake transaction can
// snapshot and restore the whole state on rollback.
type memStore struct {
	mu         sync.Mutex
	products   map[uuid.UUID]*model.Product
	cartItems  map[uuid.UUID]*model.CartItem
	orders     map[uuid.UUID]*model.Order
	orderItems map[uuid.UUID][]model.OrderItem
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[uuid.UUID]*model.Product),
		cartItems:  make(map[uuid.UUID]*model.CartItem),
		orders:     make(map[uuid.UUID]*model.Order),
		orderItems: make(map[uuid.UUID][]model.OrderItem),
	}
}

func (s *memStore) snapshotLocked() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, ci := range s.cartItems {
		cp := *ci
		c.cartItems[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		c.orders[id] = &cp
	}
	for id, items := range s.orderItems {
		c.orderItems[id] = append([]model.OrderItem(nil), items...)
	}
	return c
}

func (s *memStore) restoreLocked(snap *memStore) {
	s.products = snap.products
	s.cartItems = snap.cartItems
	s.orders = snap.orders
	s.orderItems = snap.orderItems
}

// fakeTxManager serializes transactions (standing in for the row locks the
// real placement path takes) and rolls the store back when fn fails.
type fakeTxManager struct {
	store *memStore
	txMu  sync.Mutex
}

func newFakeTxManager(store *memStore) *fakeTxManager {
	return &fakeTxManager{store: store}
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.store.mu.Lock()
	snap := m.store.snapshotLocked()
	m.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.store.mu.Lock()
		m.store.restoreLocked(snap)
		m.store.mu.Unlock()
		return err
	}
	return nil
}

// --- products ---

type mockProductRepo struct{ store *memStore }

func newMockProductRepo(store *memStore) *mockProductRepo {
	return &mockProductRepo{store: store}
}

func (m *mockProductRepo) Create(_ context.Context, p *model.Product) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	p.ID = uuid.New()
	cp := *p
	m.store.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	p, ok := m.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) List(_ context.Context, limit, offset int, search, sort, order string) ([]model.Product, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var all []model.Product
	for _, p := range m.store.products {
		all = append(all, *p)
	}
	return all, len(all), nil
}

func (m *mockProductRepo) Update(_ context.Context, p *model.Product) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	cp := *p
	m.store.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.products, id)
	return nil
}

func (m *mockProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	p, ok := m.store.products[id]
	if !ok || p.Stock < quantity {
		return repository.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (m *mockProductRepo) IncrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if p, ok := m.store.products[id]; ok {
		p.Stock += quantity
	}
	return nil
}

// --- cart ---

type mockCartRepo struct{ store *memStore }

func newMockCartRepo(store *memStore) *mockCartRepo {
	return &mockCartRepo{store: store}
}

func (m *mockCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var items []model.CartItem
	for _, ci := range m.store.cartItems {
		if ci.UserID != userID {
			continue
		}
		cp := *ci
		if p, ok := m.store.products[ci.ProductID]; ok {
			pcp := *p
			cp.Product = &pcp
		}
		items = append(items, cp)
	}
	return items, nil
}

func (m *mockCartRepo) ListByUserLocked(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return m.ListByUser(ctx, userID)
}

func (m *mockCartRepo) GetByID(_ context.Context, userID, itemID uuid.UUID) (*model.CartItem, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	ci, ok := m.store.cartItems[itemID]
	if !ok || ci.UserID != userID {
		return nil, nil
	}
	cp := *ci
	return &cp, nil
}

func (m *mockCartRepo) GetByProduct(_ context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, ci := range m.store.cartItems {
		if ci.UserID == userID && ci.ProductID == productID {
			cp := *ci
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCartRepo) Create(_ context.Context, item *model.CartItem) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	item.ID = uuid.New()
	cp := *item
	m.store.cartItems[item.ID] = &cp
	return nil
}

func (m *mockCartRepo) UpdateQuantity(_ context.Context, userID, itemID uuid.UUID, quantity int) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	ci, ok := m.store.cartItems[itemID]
	if !ok || ci.UserID != userID {
		return pgx.ErrNoRows
	}
	ci.Quantity = quantity
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, userID, itemID uuid.UUID) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	ci, ok := m.store.cartItems[itemID]
	if !ok || ci.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(m.store.cartItems, itemID)
	return nil
}

func (m *mockCartRepo) ClearUser(_ context.Context, userID uuid.UUID) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for id, ci := range m.store.cartItems {
		if ci.UserID == userID {
			delete(m.store.cartItems, id)
		}
	}
	return nil
}

// --- orders ---

type mockOrderRepo struct {
	store          *memStore
	createItemsErr error
}

func newMockOrderRepo(store *memStore) *mockOrderRepo {
	return &mockOrderRepo{store: store}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	order.ID = uuid.New()
	cp := *order
	m.store.orders[order.ID] = &cp
	return nil
}

func (m *mockOrderRepo) CreateItems(_ context.Context, items []model.OrderItem) error {
	if m.createItemsErr != nil {
		return m.createItemsErr
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for i := range items {
		items[i].ID = uuid.New()
		m.store.orderItems[items[i].OrderID] = append(m.store.orderItems[items[i].OrderID], items[i])
	}
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	o, ok := m.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]model.OrderItem(nil), m.store.orderItems[id]...)
	return &cp, nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var orders []model.Order
	for _, o := range m.store.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var orders []model.Order
	for _, o := range m.store.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	o, ok := m.store.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	o.Status = status
	if paymentStatus != nil {
		o.PaymentStatus = *paymentStatus
	}
	return nil
}

func (m *mockOrderRepo) CancelPending(_ context.Context, id uuid.UUID) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	o, ok := m.store.orders[id]
	if !ok || o.Status != model.OrderStatusPending {
		return pgx.ErrNoRows
	}
	o.Status = model.OrderStatusCancelled
	return nil
}

// --- notifications ---

type mockPublisher struct {
	mu       sync.Mutex
	messages []model.NotificationMessage
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, msg model.NotificationMessage) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockPublisher) published() []model.NotificationMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.NotificationMessage(nil), m.messages...)
}
