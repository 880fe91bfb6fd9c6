package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitcore/gym-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItems(ctx context.Context, items []model.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) error
	// CancelPending flips the order to cancelled only if it is still
	// pending, returning pgx.ErrNoRows otherwise. The conditional write is
	// what keeps two concurrent cancels from both passing the guard.
	CancelPending(ctx context.Context, id uuid.UUID) error
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

func (r *pgOrderRepo) Create(ctx context.Context, order *model.Order) error {
	order.ID = uuid.New()
	err := querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO orders (id, user_id, full_name, email, phone, address,
			payment_method, payment_status, status, subtotal, shipping, tax, total, notes,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		 RETURNING created_at, updated_at`,
		order.ID, order.UserID, order.FullName, order.Email, order.Phone, order.Address,
		order.PaymentMethod, order.PaymentStatus, order.Status,
		order.Subtotal, order.Shipping, order.Tax, order.Total, order.Notes,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) CreateItems(ctx context.Context, items []model.OrderItem) error {
	for i := range items {
		items[i].ID = uuid.New()
		err := querier(ctx, r.pool).QueryRow(ctx,
			`INSERT INTO order_items (id, order_id, product_id, name, price, quantity, subtotal, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING created_at`,
			items[i].ID, items[i].OrderID, items[i].ProductID, items[i].Name,
			items[i].Price, items[i].Quantity, items[i].Subtotal,
		).Scan(&items[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

const orderSelect = `SELECT id, user_id, full_name, email, phone, address,
	payment_method, payment_status, status, subtotal, shipping, tax, total, notes,
	created_at, updated_at FROM orders`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.FullName, &o.Email, &o.Phone, &o.Address,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.Subtotal, &o.Shipping, &o.Tax, &o.Total, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order := &model.Order{}
	err := scanOrder(querier(ctx, r.pool).QueryRow(ctx, orderSelect+` WHERE id = $1`, id), order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT id, order_id, product_id, name, price, quantity, subtotal, created_at
		 FROM order_items WHERE order_id = $1 ORDER BY created_at`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Price, &item.Quantity, &item.Subtotal, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return order, nil
}

func (r *pgOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, orderSelect+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *pgOrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY created_at DESC`)
}

func (r *pgOrderRepo) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *pgOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) error {
	var ct pgconn.CommandTag
	var err error
	if paymentStatus != nil {
		ct, err = querier(ctx, r.pool).Exec(ctx,
			`UPDATE orders SET status = $2, payment_status = $3, updated_at = NOW() WHERE id = $1`,
			id, status, *paymentStatus,
		)
	} else {
		ct, err = querier(ctx, r.pool).Exec(ctx,
			`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
			id, status,
		)
	}
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgOrderRepo) CancelPending(ctx context.Context, id uuid.UUID) error {
	ct, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
		id, model.OrderStatusCancelled, model.OrderStatusPending,
	)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
