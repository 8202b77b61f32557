package dashboard

import (
	"context"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Totals aggregates non-canceled jobs carrying one mode tag.
type Totals struct {
	Revenue    decimal.Decimal
	Commission decimal.Decimal
	Processing int64
}

// Profit is revenue less commission.
func (t Totals) Profit() decimal.Decimal {
	return t.Revenue.Sub(t.Commission)
}

// DayTotals is Totals for one calendar day in the business zone.
type DayTotals struct {
	Day        time.Time
	Revenue    decimal.Decimal
	Commission decimal.Decimal
}

// RosterRow is an active worker with today's presence. DailySalary is nil
// when the worker has no pay profile yet.
type RosterRow struct {
	WorkerID    string
	Username    string
	FullName    string
	IsPresent   bool
	DailySalary *decimal.Decimal
}

// DashboardRepository never counts canceled jobs and always filters on the
// job's own mode tag.
type DashboardRepository interface {
	JobTotals(ctx context.Context, mode settings.Mode, from, to time.Time) (Totals, error)
	// DailyTotals groups by calendar day in loc; days without jobs are absent.
	DailyTotals(ctx context.Context, mode settings.Mode, from, to time.Time, loc *time.Location) ([]DayTotals, error)
	RecentJobs(ctx context.Context, mode settings.Mode, from, to time.Time, limit int) ([]RecentJob, error)
	Roster(ctx context.Context, date time.Time) ([]RosterRow, error)
}
