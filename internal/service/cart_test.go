package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcore/gym-api/internal/model"
)

func newCartFixture() (*CartService, *mockCartRepo, *mockProductRepo) {
	store := newMemStore()
	cartRepo := newMockCartRepo(store)
	productRepo := newMockProductRepo(store)
	return NewCartService(cartRepo, productRepo), cartRepo, productRepo
}

func seedProduct(t *testing.T, repo *mockProductRepo, name string, stock int) uuid.UUID {
	t.Helper()
	p := &model.Product{Name: name, Price: decimal.NewFromInt(10), Stock: stock}
	require.NoError(t, repo.Create(context.Background(), p))
	return p.ID
}

func TestCartService_AddItem(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()
	pid := seedProduct(t, productRepo, "Shaker", 100)

	item, created, err := svc.AddItem(ctx, userID, pid, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, item.Quantity)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()
	pid := seedProduct(t, productRepo, "Shaker", 100)

	_, created, err := svc.AddItem(ctx, userID, pid, 2)
	require.NoError(t, err)
	assert.True(t, created)

	item, created, err := svc.AddItem(ctx, userID, pid, 3)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 5, item.Quantity)

	// Still a single line for the pair.
	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, _, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_StockExceeded(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()
	pid := seedProduct(t, productRepo, "Gloves", 4)

	_, _, err := svc.AddItem(ctx, userID, pid, 5)
	assert.ErrorIs(t, err, ErrStockExceeded)

	// Merge that would pass stock is rejected and the line is unchanged.
	_, created, err := svc.AddItem(ctx, userID, pid, 3)
	require.NoError(t, err)
	assert.True(t, created)

	_, _, err = svc.AddItem(ctx, userID, pid, 2)
	assert.ErrorIs(t, err, ErrStockExceeded)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestCartService_UpdateItem(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()
	pid := seedProduct(t, productRepo, "Towel", 10)

	item, _, err := svc.AddItem(ctx, userID, pid, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, userID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = svc.UpdateItem(ctx, userID, item.ID, 11)
	assert.ErrorIs(t, err, ErrStockExceeded)
}

func TestCartService_UpdateItem_OtherUsersItem(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	owner := uuid.New()
	pid := seedProduct(t, productRepo, "Towel", 10)

	item, _, err := svc.AddItem(ctx, owner, pid, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, uuid.New(), item.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()
	pid := seedProduct(t, productRepo, "Band", 10)

	item, _, err := svc.AddItem(ctx, userID, pid, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, userID, item.ID))
	assert.ErrorIs(t, svc.RemoveItem(ctx, userID, item.ID), ErrCartItemNotFound)
}

func TestCartService_Clear(t *testing.T) {
	svc, _, productRepo := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()
	pid := seedProduct(t, productRepo, "Bag", 10)

	_, _, err := svc.AddItem(ctx, userID, pid, 1)
	require.NoError(t, err)
	_, _, err = svc.AddItem(ctx, other, pid, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, userID))

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	// Clearing one user leaves the other's cart alone.
	otherCart, err := svc.GetCart(ctx, other)
	require.NoError(t, err)
	require.Len(t, otherCart, 1)
}
