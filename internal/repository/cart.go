package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitcore/gym-api/internal/model"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	// ListByUserLocked additionally takes row locks on the referenced
	// products, held until the surrounding transaction ends.
	ListByUserLocked(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error)
	GetByProduct(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	ClearUser(ctx context.Context, userID uuid.UUID) error
}

type pgCartRepo struct{ pool *pgxpool.Pool }

func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &pgCartRepo{pool: pool}
}

const cartSelect = `SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			p.id, p.name, p.description, p.price, p.stock, p.category_id, p.photo_url, p.created_at, p.updated_at,
			c.name
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`

func (r *pgCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return r.list(ctx, userID, cartSelect)
}

func (r *pgCartRepo) ListByUserLocked(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return r.list(ctx, userID, cartSelect+` FOR UPDATE OF p`)
}

func (r *pgCartRepo) list(ctx context.Context, userID uuid.UUID, query string) ([]model.CartItem, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		var p model.Product
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
			&item.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, nil
}

func (r *pgCartRepo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error) {
	item := &model.CartItem{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity, created_at, updated_at
		 FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return item, nil
}

func (r *pgCartRepo) GetByProduct(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	item := &model.CartItem{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity, created_at, updated_at
		 FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item by product: %w", err)
	}
	return item, nil
}

func (r *pgCartRepo) Create(ctx context.Context, item *model.CartItem) error {
	item.ID = uuid.New()
	err := querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING created_at, updated_at`,
		item.ID, item.UserID, item.ProductID, item.Quantity,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

func (r *pgCartRepo) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	ct, err := querier(ctx, r.pool).Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		itemID, userID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgCartRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	ct, err := querier(ctx, r.pool).Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgCartRepo) ClearUser(ctx context.Context, userID uuid.UUID) error {
	_, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
