package job

import (
	"context"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
)

// ListFilter is the resolved form of JobFilter. Nil fields do not filter.
type ListFilter struct {
	ModeTag   *settings.Mode
	Source    *Source
	Status    *Status
	WorkerID  *string
	ServiceID *string
	Search    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	// Update persists mutable fields. FinalPrice, ModeTag, Source and
	// CreatedAt are never written after creation.
	Update(ctx context.Context, j Job) (Job, error)
	Delete(ctx context.Context, id string) error
	// List returns matching jobs newest first, plus the total count.
	List(ctx context.Context, filter ListFilter) ([]Listing, int64, error)
}
