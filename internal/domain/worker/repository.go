package worker

import (
	"context"

	"github.com/shopspring/decimal"
)

type WorkerRepository interface {
	// Create returns ErrUsernameExists on a duplicate username.
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByUsername(ctx context.Context, username string) (Worker, error)
	List(ctx context.Context, activeOnly bool) ([]Worker, error)
	Update(ctx context.Context, w Worker) (Worker, error)
	Delete(ctx context.Context, id string) error
	CountAdmins(ctx context.Context) (int64, error)
}

type ProfileRepository interface {
	GetByWorkerID(ctx context.Context, workerID string) (Profile, error)
	Upsert(ctx context.Context, p Profile) (Profile, error)
	// GetOrCreate inserts a profile with defaultSalary unless one exists and
	// returns the stored row.
	GetOrCreate(ctx context.Context, workerID string, defaultSalary decimal.Decimal) (Profile, error)
}
