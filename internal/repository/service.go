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

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgServiceRepo struct{ pool *pgxpool.Pool }

func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &pgServiceRepo{pool: pool}
}

func (r *pgServiceRepo) Create(ctx context.Context, svc *model.Service) error {
	svc.ID = uuid.New()
	err := querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO services (id, name, description, price, duration_minutes, photo_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING created_at, updated_at`,
		svc.ID, svc.Name, svc.Description, svc.Price, svc.DurationMinutes, svc.PhotoURL,
	).Scan(&svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (r *pgServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	s := &model.Service{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, description, price, duration_minutes, photo_url, created_at, updated_at
		 FROM services WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.PhotoURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *pgServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT id, name, description, price, duration_minutes, photo_url, created_at, updated_at
		 FROM services ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.PhotoURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, nil
}

func (r *pgServiceRepo) Update(ctx context.Context, svc *model.Service) error {
	err := querier(ctx, r.pool).QueryRow(ctx,
		`UPDATE services SET name=$2, description=$3, price=$4, duration_minutes=$5, photo_url=$6, updated_at=NOW()
		 WHERE id=$1 RETURNING updated_at`,
		svc.ID, svc.Name, svc.Description, svc.Price, svc.DurationMinutes, svc.PhotoURL,
	).Scan(&svc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

func (r *pgServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
