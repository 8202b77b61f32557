package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reportConcurrency bounds the per-worker queries run by Report.
const reportConcurrency = 4

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	settingsRepo settings.SettingsRepository
	workerRepo   worker.WorkerRepository
	clock        clock.Clock
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	settingsRepo settings.SettingsRepository,
	workerRepo worker.WorkerRepository,
	clk clock.Clock,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		settingsRepo: settingsRepo,
		workerRepo:   workerRepo,
		clock:        clk,
	}
}

// Earnings implements payroll.PayrollService.
func (s *PayrollServiceImpl) Earnings(ctx context.Context, workerID string, period payroll.Period) (payroll.Earnings, error) {
	mode, err := s.currentMode(ctx)
	if err != nil {
		return payroll.Earnings{}, err
	}
	return s.earningsFor(ctx, workerID, period, mode)
}

// MonthlyEarnings implements payroll.PayrollService.
func (s *PayrollServiceImpl) MonthlyEarnings(ctx context.Context, workerID string) (payroll.Earnings, error) {
	return s.Earnings(ctx, workerID, payroll.MonthPeriod(s.clock.Now()))
}

// MonthlyAdvances implements payroll.PayrollService.
func (s *PayrollServiceImpl) MonthlyAdvances(ctx context.Context, workerID string) (decimal.Decimal, error) {
	period := payroll.MonthPeriod(s.clock.Now())
	return s.payrollRepo.SumAdvances(ctx, workerID, period.Start, period.End)
}

// NetSalary implements payroll.PayrollService.
func (s *PayrollServiceImpl) NetSalary(ctx context.Context, workerID string) (decimal.Decimal, error) {
	earned, err := s.MonthlyEarnings(ctx, workerID)
	if err != nil {
		return decimal.Zero, err
	}
	advances, err := s.MonthlyAdvances(ctx, workerID)
	if err != nil {
		return decimal.Zero, err
	}
	return payroll.Net(earned.Amount, advances), nil
}

// WorkerReport implements payroll.PayrollService.
func (s *PayrollServiceImpl) WorkerReport(ctx context.Context, workerID string, month string) (payroll.WorkerPayrollResponse, error) {
	if !validator.IsValidUUID(workerID) {
		return payroll.WorkerPayrollResponse{}, validator.Single("worker_id", "must be a valid UUID")
	}
	period, err := s.resolveMonth(month)
	if err != nil {
		return payroll.WorkerPayrollResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return payroll.WorkerPayrollResponse{}, err
	}
	mode, err := s.currentMode(ctx)
	if err != nil {
		return payroll.WorkerPayrollResponse{}, err
	}

	return s.workerRow(ctx, w, period, mode)
}

// Report implements payroll.PayrollService. The mode is read once so every
// row is computed under the same scheme.
func (s *PayrollServiceImpl) Report(ctx context.Context, month string) (payroll.PayrollReportResponse, error) {
	period, err := s.resolveMonth(month)
	if err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	mode, err := s.currentMode(ctx)
	if err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	workers, err := s.workerRepo.List(ctx, true)
	if err != nil {
		return payroll.PayrollReportResponse{}, err
	}

	rows := make([]payroll.WorkerPayrollResponse, len(workers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)
	for i, w := range workers {
		g.Go(func() error {
			row, err := s.workerRow(gctx, w, period, mode)
			if err != nil {
				return fmt.Errorf("failed to compute payroll for worker %s: %w", w.ID, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.PayrollReportResponse{}, err
	}

	resp := payroll.PayrollReportResponse{
		Month:         period.Label(),
		Mode:          mode,
		Workers:       rows,
		TotalEarned:   decimal.Zero,
		TotalAdvances: decimal.Zero,
		TotalNet:      decimal.Zero,
	}
	for _, row := range rows {
		resp.TotalEarned = resp.TotalEarned.Add(row.Earned)
		resp.TotalAdvances = resp.TotalAdvances.Add(row.Advances)
		resp.TotalNet = resp.TotalNet.Add(row.Net)
	}
	return resp, nil
}

func (s *PayrollServiceImpl) workerRow(ctx context.Context, w worker.Worker, period payroll.Period, mode settings.Mode) (payroll.WorkerPayrollResponse, error) {
	earned, err := s.earningsFor(ctx, w.ID, period, mode)
	if err != nil {
		return payroll.WorkerPayrollResponse{}, err
	}
	advances, err := s.payrollRepo.SumAdvances(ctx, w.ID, period.Start, period.End)
	if err != nil {
		return payroll.WorkerPayrollResponse{}, err
	}

	row := payroll.WorkerPayrollResponse{
		WorkerID: w.ID,
		Username: w.Username,
		FullName: w.FullName,
		Month:    period.Label(),
		Mode:     mode,
		Earned:   earned.Amount,
		Advances: advances,
		Net:      payroll.Net(earned.Amount, advances),
	}
	if mode == settings.ModeSalary {
		days := earned.DaysPresent
		row.DaysPresent = &days
	}
	return row, nil
}

func (s *PayrollServiceImpl) earningsFor(ctx context.Context, workerID string, period payroll.Period, mode settings.Mode) (payroll.Earnings, error) {
	if mode == settings.ModeSalary {
		amount, days, err := s.payrollRepo.SumSalarySnapshots(ctx, workerID, period.Start, period.End)
		if err != nil {
			return payroll.Earnings{}, err
		}
		return payroll.Earnings{Mode: mode, Amount: amount, DaysPresent: days}, nil
	}

	amount, err := s.payrollRepo.SumCommission(ctx, workerID, period.Start, period.End)
	if err != nil {
		return payroll.Earnings{}, err
	}
	return payroll.Earnings{Mode: mode, Amount: amount}, nil
}

func (s *PayrollServiceImpl) currentMode(ctx context.Context) (settings.Mode, error) {
	current, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.DefaultMode, nil
	}
	if err != nil {
		return "", err
	}
	return current.Mode, nil
}

// resolveMonth parses YYYY-MM in the business zone; empty means this month.
func (s *PayrollServiceImpl) resolveMonth(month string) (payroll.Period, error) {
	if month == "" {
		return payroll.MonthPeriod(s.clock.Now()), nil
	}
	start, err := time.ParseInLocation("2006-01", month, s.clock.Location())
	if err != nil {
		return payroll.Period{}, payroll.ErrInvalidMonth
	}
	return payroll.MonthPeriod(start), nil
}
