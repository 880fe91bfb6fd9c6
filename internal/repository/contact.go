package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitcore/gym-api/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context) ([]model.ContactMessage, error)
}

type pgContactRepo struct{ pool *pgxpool.Pool }

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &pgContactRepo{pool: pool}
}

func (r *pgContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	msg.ID = uuid.New()
	err := querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING created_at`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *pgContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT id, name, email, subject, message, created_at FROM contact_messages ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
