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

type TrainerRepository interface {
	Create(ctx context.Context, trainer *model.Trainer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	List(ctx context.Context) ([]model.Trainer, error)
	Update(ctx context.Context, trainer *model.Trainer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTrainerRepo struct{ pool *pgxpool.Pool }

func NewTrainerRepository(pool *pgxpool.Pool) TrainerRepository {
	return &pgTrainerRepo{pool: pool}
}

func (r *pgTrainerRepo) Create(ctx context.Context, trainer *model.Trainer) error {
	trainer.ID = uuid.New()
	err := querier(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO trainers (id, name, speciality, bio, photo_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
		trainer.ID, trainer.Name, trainer.Speciality, trainer.Bio, trainer.PhotoURL,
	).Scan(&trainer.CreatedAt, &trainer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create trainer: %w", err)
	}
	return nil
}

func (r *pgTrainerRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	t := &model.Trainer{}
	err := querier(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, speciality, bio, photo_url, created_at, updated_at FROM trainers WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Speciality, &t.Bio, &t.PhotoURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trainer: %w", err)
	}
	return t, nil
}

func (r *pgTrainerRepo) List(ctx context.Context) ([]model.Trainer, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT id, name, speciality, bio, photo_url, created_at, updated_at FROM trainers ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer rows.Close()

	var trainers []model.Trainer
	for rows.Next() {
		var t model.Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Speciality, &t.Bio, &t.PhotoURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		trainers = append(trainers, t)
	}
	return trainers, nil
}

func (r *pgTrainerRepo) Update(ctx context.Context, trainer *model.Trainer) error {
	err := querier(ctx, r.pool).QueryRow(ctx,
		`UPDATE trainers SET name=$2, speciality=$3, bio=$4, photo_url=$5, updated_at=NOW()
		 WHERE id=$1 RETURNING updated_at`,
		trainer.ID, trainer.Name, trainer.Speciality, trainer.Bio, trainer.PhotoURL,
	).Scan(&trainer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("update trainer: %w", err)
	}
	return nil
}

func (r *pgTrainerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := querier(ctx, r.pool).Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trainer: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
