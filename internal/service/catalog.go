package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fitcore/gym-api/internal/dto"
	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrTrainerNotFound  = errors.New("trainer not found")
)

// CatalogService covers the thin catalog entities: categories, gym services
// and trainers. Validate, then write; nothing here needs a transaction.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
	trainerRepo  repository.TrainerRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	serviceRepo repository.ServiceRepository,
	trainerRepo repository.TrainerRepository,
) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo, serviceRepo: serviceRepo, trainerRepo: trainerRepo}
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

// --- Services ---

func (s *CatalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		PhotoURL:        req.PhotoURL,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.serviceRepo.List(ctx)
}

func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.PhotoURL != nil {
		svc.PhotoURL = req.PhotoURL
	}
	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.serviceRepo.Delete(ctx, id)
}

// --- Trainers ---

func (s *CatalogService) CreateTrainer(ctx context.Context, req dto.CreateTrainerRequest) (*model.Trainer, error) {
	trainer := &model.Trainer{
		Name:       req.Name,
		Speciality: req.Speciality,
		Bio:        req.Bio,
		PhotoURL:   req.PhotoURL,
	}
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return nil, fmt.Errorf("create trainer: %w", err)
	}
	return trainer, nil
}

func (s *CatalogService) GetTrainer(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	if trainer == nil {
		return nil, ErrTrainerNotFound
	}
	return trainer, nil
}

func (s *CatalogService) ListTrainers(ctx context.Context) ([]model.Trainer, error) {
	return s.trainerRepo.List(ctx)
}

func (s *CatalogService) UpdateTrainer(ctx context.Context, id uuid.UUID, req dto.UpdateTrainerRequest) (*model.Trainer, error) {
	trainer, err := s.GetTrainer(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		trainer.Name = *req.Name
	}
	if req.Speciality != nil {
		trainer.Speciality = *req.Speciality
	}
	if req.Bio != nil {
		trainer.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		trainer.PhotoURL = req.PhotoURL
	}
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, fmt.Errorf("update trainer: %w", err)
	}
	return trainer, nil
}

func (s *CatalogService) DeleteTrainer(ctx context.Context, id uuid.UUID) error {
	return s.trainerRepo.Delete(ctx, id)
}
