package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// SumCommission implements payroll.PayrollRepository.
func (r *payrollRepository) SumCommission(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(final_commission), 0)
		FROM jobs
		WHERE worker_id = $1
		  AND status = 'completed'
		  AND mode_tag = $2
		  AND created_at >= $3 AND created_at < $4
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, workerID, settings.ModeCommission, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum commission: %w", err)
	}
	return total, nil
}

// SumSalarySnapshots implements payroll.PayrollRepository. Bounds are
// compared as calendar dates in the zone of from and to.
func (r *payrollRepository) SumSalarySnapshots(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(salary_snapshot), 0), COUNT(*)
		FROM attendances
		WHERE worker_id = $1
		  AND is_present = TRUE
		  AND date >= $2::date AND date < $3::date
	`

	var total decimal.Decimal
	var days int
	err := q.QueryRow(ctx, query, workerID, from.Format(time.DateOnly), to.Format(time.DateOnly)).Scan(&total, &days)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum salary snapshots: %w", err)
	}
	return total, days, nil
}

// SumAdvances implements payroll.PayrollRepository.
func (r *payrollRepository) SumAdvances(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM advances
		WHERE worker_id = $1 AND date >= $2 AND date < $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, workerID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum advances: %w", err)
	}
	return total, nil
}
