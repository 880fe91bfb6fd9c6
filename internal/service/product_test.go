package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcore/gym-api/internal/dto"
	"github.com/fitcore/gym-api/internal/model"
)

func TestProductService_Create(t *testing.T) {
	svc := NewProductService(newMockProductRepo(newMemStore()), nil)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Whey Protein", Price: decimal.NewFromFloat(9.99), Stock: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Whey Protein", resp.Name)
	assert.Equal(t, 100, resp.Stock)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	svc := NewProductService(newMockProductRepo(newMemStore()), nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Update_PartialFields(t *testing.T) {
	repo := newMockProductRepo(newMemStore())
	svc := NewProductService(repo, nil)
	ctx := context.Background()

	p := &model.Product{Name: "Mat", Price: decimal.NewFromInt(30), Stock: 5}
	require.NoError(t, repo.Create(ctx, p))

	newStock := 12
	resp, err := svc.Update(ctx, p.ID, dto.UpdateProductRequest{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Mat", resp.Name)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(30)))
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := NewProductService(newMockProductRepo(newMemStore()), nil)

	name := "renamed"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	store := newMemStore()
	repo := newMockProductRepo(store)
	svc := NewProductService(repo, nil)
	ctx := context.Background()

	p := &model.Product{Name: "Rope", Price: decimal.NewFromInt(10), Stock: 1}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err := svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
