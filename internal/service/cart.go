package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/repository"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrStockExceeded rejects a cart write whose quantity would pass the
	// product's current stock. The check is advisory: stock may still move
	// between here and checkout, where the transactional guard decides.
	ErrStockExceeded = errors.New("insufficient stock available")
)

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// AddItem merges into an existing (user, product) line or creates a new one.
// The combined quantity must fit the product's current stock; on violation
// nothing is written. The returned bool reports whether a new line was
// created (201) as opposed to merged (200).
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, false, ErrProductNotFound
	}

	existing, err := s.cartRepo.GetByProduct(ctx, userID, productID)
	if err != nil {
		return nil, false, fmt.Errorf("get cart item: %w", err)
	}

	if existing != nil {
		combined := existing.Quantity + quantity
		if combined > product.Stock {
			return nil, false, ErrStockExceeded
		}
		if err := s.cartRepo.UpdateQuantity(ctx, userID, existing.ID, combined); err != nil {
			return nil, false, fmt.Errorf("merge cart item: %w", err)
		}
		existing.Quantity = combined
		return existing, false, nil
	}

	if quantity > product.Stock {
		return nil, false, ErrStockExceeded
	}
	item := &model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, false, fmt.Errorf("create cart item: %w", err)
	}
	return item, true, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	item, err := s.cartRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity > product.Stock {
		return nil, ErrStockExceeded
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	item.Quantity = quantity
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	err := s.cartRepo.Delete(ctx, userID, itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.ClearUser(ctx, userID)
}
