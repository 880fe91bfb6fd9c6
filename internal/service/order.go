package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/notify"
	"github.com/fitcore/gym-api/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("only pending orders can be cancelled")
)

// InsufficientStockError names the product a checkout tripped over, so the
// client can tell the customer what to remove.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d", e.ProductName, e.Available)
}

type PlaceOrderInput struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	PaymentMethod model.PaymentMethod
	Subtotal      decimal.Decimal
	Shipping      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string
}

type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	tx          repository.TxManager
	publisher   notify.Publisher
	log         *slog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	tx repository.TxManager,
	publisher notify.Publisher,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		tx:          tx,
		publisher:   publisher,
		log:         log,
	}
}

// PlaceOrder converts the user's cart into an order. Everything up to the
// cart clearing happens in one transaction: the locked cart read, the stock
// checks, the order and item inserts, and the conditional stock decrements
// commit together or not at all. The confirmation notification goes out
// after commit and never affects the result.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, in PlaceOrderInput) (*model.Order, error) {
	var order *model.Order

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.cartRepo.ListByUserLocked(ctx, userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		for _, line := range lines {
			if line.Product.Stock < line.Quantity {
				return &InsufficientStockError{ProductName: line.Product.Name, Available: line.Product.Stock}
			}
		}

		paymentStatus := model.PaymentStatusPending
		if in.PaymentMethod == model.PaymentMethodEsewa {
			// Wallet payments are captured before this call.
			paymentStatus = model.PaymentStatusPaid
		}

		o := &model.Order{
			UserID:        userID,
			FullName:      in.FullName,
			Email:         in.Email,
			Phone:         in.Phone,
			Address:       in.Address,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: paymentStatus,
			Status:        model.OrderStatusPending,
			Subtotal:      in.Subtotal,
			Shipping:      in.Shipping,
			Tax:           in.Tax,
			Total:         in.Total,
			Notes:         in.Notes,
		}
		if err := s.orderRepo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			qty := decimal.NewFromInt(int64(line.Quantity))
			items = append(items, model.OrderItem{
				OrderID:   o.ID,
				ProductID: line.ProductID,
				Name:      line.Product.Name,
				Price:     line.Product.Price,
				Quantity:  line.Quantity,
				Subtotal:  line.Product.Price.Mul(qty),
			})
		}
		if err := s.orderRepo.CreateItems(ctx, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		for _, line := range lines {
			if err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return &InsufficientStockError{ProductName: line.Product.Name, Available: line.Product.Stock}
				}
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		if err := s.cartRepo.ClearUser(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		o.Items = items
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, model.NotificationMessage{
		ID:            uuid.New(),
		Kind:          model.NotificationOrderConfirmation,
		Recipient:     order.Email,
		RecipientName: order.FullName,
		OrderID:       &order.ID,
		OrderStatus:   order.Status,
		PaymentStatus: order.PaymentStatus,
	})
	return order, nil
}

// CancelOrder restores stock for every line and marks the order cancelled,
// atomically. Only the owning user may cancel, and only while pending.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	var cancelled *model.Order

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order == nil || order.UserID != userID {
			return ErrOrderNotFound
		}
		if order.Status != model.OrderStatusPending {
			return ErrInvalidTransition
		}

		// Claim the transition before touching stock: the conditional
		// write locks the row, so a concurrent cancel that also saw
		// pending finds zero rows here and never restores anything.
		if err := s.orderRepo.CancelPending(ctx, orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("set cancelled: %w", err)
		}

		for _, item := range order.Items {
			// Restoration is best-effort for products deleted since
			// the order was placed; IncrementStock skips missing rows.
			if err := s.productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
		}

		order.Status = model.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, model.NotificationMessage{
		ID:            uuid.New(),
		Kind:          model.NotificationOrderStatusUpdate,
		Recipient:     cancelled.Email,
		RecipientName: cancelled.FullName,
		OrderID:       &cancelled.ID,
		OrderStatus:   cancelled.Status,
		PaymentStatus: cancelled.PaymentStatus,
	})
	return cancelled, nil
}

// UpdateStatus overwrites the order and optionally the payment status with
// no transition table; any status may move to any other.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) (*model.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, paymentStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	s.notify(ctx, model.NotificationMessage{
		ID:            uuid.New(),
		Kind:          model.NotificationOrderStatusUpdate,
		Recipient:     order.Email,
		RecipientName: order.FullName,
		OrderID:       &order.ID,
		OrderStatus:   order.Status,
		PaymentStatus: order.PaymentStatus,
	})
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// notify publishes best-effort: a failed publish is logged and swallowed.
func (s *OrderService) notify(ctx context.Context, msg model.NotificationMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.log.Error("publish notification", "kind", msg.Kind, "order_id", msg.OrderID, "error", err)
	}
}
