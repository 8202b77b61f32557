package memory

import (
	"context"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

type payrollRepository struct{ s *Store }

func NewPayrollRepository(s *Store) payroll.PayrollRepository {
	return &payrollRepository{s: s}
}

func (r *payrollRepository) SumCommission(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := decimal.Zero
	for _, j := range r.s.jobs {
		if j.WorkerID == nil || *j.WorkerID != workerID {
			continue
		}
		if j.Status != job.StatusCompleted || j.ModeTag != settings.ModeCommission {
			continue
		}
		if j.CreatedAt.Before(from) || !j.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(j.FinalCommission)
	}
	return total, nil
}

func (r *payrollRepository) SumSalarySnapshots(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	start, end := calendarDay(from), calendarDay(to)
	total := decimal.Zero
	days := 0
	for _, a := range r.s.attendances {
		if a.WorkerID != workerID || !a.IsPresent {
			continue
		}
		if a.Date.Before(start) || !a.Date.Before(end) {
			continue
		}
		total = total.Add(a.SalarySnapshot)
		days++
	}
	return total, days, nil
}

func (r *payrollRepository) SumAdvances(ctx context.Context, workerID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := decimal.Zero
	for _, a := range r.s.advances {
		if a.WorkerID != workerID || a.Date.Before(from) || !a.Date.Before(to) {
			continue
		}
		total = total.Add(a.Amount)
	}
	return total, nil
}
