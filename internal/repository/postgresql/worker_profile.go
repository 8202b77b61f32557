package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) worker.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// GetByWorkerID implements worker.ProfileRepository.
func (r *profileRepositoryImpl) GetByWorkerID(ctx context.Context, workerID string) (worker.Profile, error) {
	q := GetQuerier(ctx, r.db)

	var p worker.Profile
	err := q.QueryRow(ctx, `
		SELECT worker_id, daily_salary, updated_at
		FROM worker_profiles
		WHERE worker_id = $1
	`, workerID).Scan(&p.WorkerID, &p.DailySalary, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Profile{}, worker.ErrProfileNotFound
		}
		return worker.Profile{}, fmt.Errorf("failed to get worker profile: %w", err)
	}
	return p, nil
}

// Upsert implements worker.ProfileRepository.
func (r *profileRepositoryImpl) Upsert(ctx context.Context, p worker.Profile) (worker.Profile, error) {
	q := GetQuerier(ctx, r.db)

	var result worker.Profile
	err := q.QueryRow(ctx, `
		INSERT INTO worker_profiles (worker_id, daily_salary, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (worker_id) DO UPDATE
			SET daily_salary = EXCLUDED.daily_salary, updated_at = EXCLUDED.updated_at
		RETURNING worker_id, daily_salary, updated_at
	`, p.WorkerID, p.DailySalary).Scan(&result.WorkerID, &result.DailySalary, &result.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return worker.Profile{}, worker.ErrWorkerNotFound
		}
		return worker.Profile{}, fmt.Errorf("failed to upsert worker profile: %w", err)
	}
	return result, nil
}

// GetOrCreate implements worker.ProfileRepository. The no-op update makes
// RETURNING yield the existing row on conflict.
func (r *profileRepositoryImpl) GetOrCreate(ctx context.Context, workerID string, defaultSalary decimal.Decimal) (worker.Profile, error) {
	q := GetQuerier(ctx, r.db)

	var result worker.Profile
	err := q.QueryRow(ctx, `
		INSERT INTO worker_profiles (worker_id, daily_salary, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (worker_id) DO UPDATE SET worker_id = EXCLUDED.worker_id
		RETURNING worker_id, daily_salary, updated_at
	`, workerID, defaultSalary).Scan(&result.WorkerID, &result.DailySalary, &result.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return worker.Profile{}, worker.ErrWorkerNotFound
		}
		return worker.Profile{}, fmt.Errorf("failed to get or create worker profile: %w", err)
	}
	return result, nil
}
