package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository holds the read-only sums behind payroll. Every query is
// bounded by the half-open [from, to) interval.
type PayrollRepository interface {
	// SumCommission totals final_commission of the worker's completed,
	// commission-tagged jobs created in the interval.
	SumCommission(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, error)
	// SumSalarySnapshots totals snapshots of present days and counts them.
	SumSalarySnapshots(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, int, error)
	SumAdvances(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, error)
}
