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

type mockCategoryRepo struct{ categories map[uuid.UUID]*model.Category }

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, c *model.Category) error {
	c.ID = uuid.New()
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	return m.categories[id], nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var all []model.Category
	for _, c := range m.categories {
		all = append(all, *c)
	}
	return all, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *model.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.categories, id)
	return nil
}

type mockServiceRepo struct{ services map[uuid.UUID]*model.Service }

func newMockServiceRepo() *mockServiceRepo {
	return &mockServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (m *mockServiceRepo) Create(_ context.Context, s *model.Service) error {
	s.ID = uuid.New()
	m.services[s.ID] = s
	return nil
}

func (m *mockServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Service, error) {
	return m.services[id], nil
}

func (m *mockServiceRepo) List(_ context.Context) ([]model.Service, error) {
	var all []model.Service
	for _, s := range m.services {
		all = append(all, *s)
	}
	return all, nil
}

func (m *mockServiceRepo) Update(_ context.Context, s *model.Service) error {
	m.services[s.ID] = s
	return nil
}

func (m *mockServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.services, id)
	return nil
}

type mockTrainerRepo struct{ trainers map[uuid.UUID]*model.Trainer }

func newMockTrainerRepo() *mockTrainerRepo {
	return &mockTrainerRepo{trainers: make(map[uuid.UUID]*model.Trainer)}
}

func (m *mockTrainerRepo) Create(_ context.Context, tr *model.Trainer) error {
	tr.ID = uuid.New()
	m.trainers[tr.ID] = tr
	return nil
}

func (m *mockTrainerRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Trainer, error) {
	return m.trainers[id], nil
}

func (m *mockTrainerRepo) List(_ context.Context) ([]model.Trainer, error) {
	var all []model.Trainer
	for _, tr := range m.trainers {
		all = append(all, *tr)
	}
	return all, nil
}

func (m *mockTrainerRepo) Update(_ context.Context, tr *model.Trainer) error {
	m.trainers[tr.ID] = tr
	return nil
}

func (m *mockTrainerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.trainers, id)
	return nil
}

func newCatalogService() *CatalogService {
	return NewCatalogService(newMockCategoryRepo(), newMockServiceRepo(), newMockTrainerRepo())
}

func TestCatalogService_Categories(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Supplements", Description: "Protein and more"})
	require.NoError(t, err)

	got, err := svc.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Supplements", got.Name)

	name := "Nutrition"
	updated, err := svc.UpdateCategory(ctx, created.ID, dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Nutrition", updated.Name)
	assert.Equal(t, "Protein and more", updated.Description)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))
	_, err = svc.GetCategory(ctx, created.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_Services(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, dto.CreateServiceRequest{
		Name: "Personal Training", Price: decimal.NewFromInt(50), DurationMinutes: 60,
	})
	require.NoError(t, err)

	price := decimal.NewFromInt(55)
	updated, err := svc.UpdateService(ctx, created.ID, dto.UpdateServiceRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, 60, updated.DurationMinutes)

	_, err = svc.GetService(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCatalogService_Trainers(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	created, err := svc.CreateTrainer(ctx, dto.CreateTrainerRequest{Name: "Maya", Speciality: "Strength"})
	require.NoError(t, err)

	bio := "Ten years of coaching."
	updated, err := svc.UpdateTrainer(ctx, created.ID, dto.UpdateTrainerRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Maya", updated.Name)
	assert.Equal(t, bio, updated.Bio)

	_, err = svc.GetTrainer(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}
