package advance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ListFilter struct {
	WorkerID *string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type AdvanceRepository interface {
	Create(ctx context.Context, a Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	// List returns one page of advances newest first, with the count and
	// amount total of every match.
	List(ctx context.Context, filter ListFilter) ([]Listing, int64, decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}
