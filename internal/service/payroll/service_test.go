package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/advance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var june15 = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc         payroll.PayrollService
	settings    settings.SettingsRepository
	workers     worker.WorkerRepository
	jobs        job.JobRepository
	attendances attendance.AttendanceRepository
	advances    advance.AdvanceRepository
	wash        catalog.Service
}

func newFixture() *fixture {
	clk := clock.Fixed{At: june15}
	store := memory.NewStore(clk.Now)
	f := &fixture{
		settings:    memory.NewSettingsRepository(store),
		workers:     memory.NewWorkerRepository(store),
		jobs:        memory.NewJobRepository(store),
		attendances: memory.NewAttendanceRepository(store),
		advances:    memory.NewAdvanceRepository(store),
		wash: catalog.Service{
			ID:               "svc-wash",
			Name:             "Basic Wash",
			Price:            decimal.NewFromInt(500),
			CommissionAmount: decimal.NewFromInt(100),
		},
	}
	f.svc = NewPayrollService(memory.NewPayrollRepository(store), f.settings, f.workers, clk)
	return f
}

func (f *fixture) seedWorker(t *testing.T, username string) worker.Worker {
	t.Helper()
	w, err := f.workers.Create(context.Background(), worker.Worker{Username: username, IsActive: true})
	require.NoError(t, err)
	return w
}

func (f *fixture) seedJob(t *testing.T, w worker.Worker, mode settings.Mode, status job.Status, at time.Time) {
	t.Helper()
	j := job.New(job.SourceManual, mode, &f.wash, at)
	j.WorkerID = &w.ID
	j.Status = status
	j.Recompute(&f.wash)
	_, err := f.jobs.Create(context.Background(), j)
	require.NoError(t, err)
}

func (f *fixture) seedPresence(t *testing.T, w worker.Worker, day time.Time, salary int64) {
	t.Helper()
	ctx := context.Background()
	a, err := f.attendances.GetOrCreateForUpdate(ctx, w.ID, day)
	require.NoError(t, err)
	a.Toggle(decimal.NewFromInt(salary))
	_, err = f.attendances.Save(ctx, a)
	require.NoError(t, err)
}

func (f *fixture) seedAdvance(t *testing.T, w worker.Worker, amount int64, at time.Time) {
	t.Helper()
	_, err := f.advances.Create(context.Background(), advance.Advance{WorkerID: w.ID, Amount: decimal.NewFromInt(amount), Date: at})
	require.NoError(t, err)
}

func (f *fixture) setMode(t *testing.T, mode settings.Mode) {
	t.Helper()
	_, err := f.settings.Save(context.Background(), settings.Settings{Mode: mode})
	require.NoError(t, err)
}

// seedMonth gives the worker commission jobs, salary attendance and
// advances around June 2024.
func (f *fixture) seedMonth(t *testing.T, w worker.Worker) {
	f.seedJob(t, w, settings.ModeCommission, job.StatusCompleted, time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC))
	f.seedJob(t, w, settings.ModeCommission, job.StatusCompleted, time.Date(2024, time.June, 14, 9, 0, 0, 0, time.UTC))
	f.seedJob(t, w, settings.ModeCommission, job.StatusCompleted, time.Date(2024, time.May, 31, 23, 0, 0, 0, time.UTC))
	f.seedJob(t, w, settings.ModeCommission, job.StatusProcessing, time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))
	f.seedJob(t, w, settings.ModeSalary, job.StatusCompleted, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC))

	f.seedPresence(t, w, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 1000)
	f.seedPresence(t, w, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), 1200)
	f.seedPresence(t, w, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 1000)

	f.seedAdvance(t, w, 30, time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	f.seedAdvance(t, w, 50, time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC))
}

func TestPayrollService_CommissionMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim")
	f.seedMonth(t, w)

	earned, err := f.svc.MonthlyEarnings(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, settings.ModeCommission, earned.Mode)
	assert.True(t, decimal.NewFromInt(200).Equal(earned.Amount), earned.Amount.String())

	advances, err := f.svc.MonthlyAdvances(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(advances))

	net, err := f.svc.NetSalary(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, earned.Amount.Sub(advances).Equal(net))
}

func TestPayrollService_SalaryMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim")
	f.seedMonth(t, w)
	f.setMode(t, settings.ModeSalary)

	earned, err := f.svc.MonthlyEarnings(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, settings.ModeSalary, earned.Mode)
	assert.Equal(t, 2, earned.DaysPresent)
	assert.True(t, decimal.NewFromInt(2200).Equal(earned.Amount))

	net, err := f.svc.NetSalary(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2170).Equal(net))
}

func TestPayrollService_NetMayBeNegative(t *testing.T) {
	f := newFixture()
	w := f.seedWorker(t, "karim")
	f.seedAdvance(t, w, 400, june15)

	net, err := f.svc.NetSalary(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-400).Equal(net))
}

func TestPayrollService_Report(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.seedWorker(t, "alpha")
	b := f.seedWorker(t, "beta")
	f.seedMonth(t, a)
	f.seedAdvance(t, b, 20, june15)
	f.setMode(t, settings.ModeSalary)

	report, err := f.svc.Report(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", report.Month)
	assert.Equal(t, settings.ModeSalary, report.Mode)
	require.Len(t, report.Workers, 2)
	assert.True(t, decimal.NewFromInt(2200).Equal(report.TotalEarned))
	assert.True(t, decimal.NewFromInt(50).Equal(report.TotalAdvances))
	assert.True(t, decimal.NewFromInt(2150).Equal(report.TotalNet))
	for _, row := range report.Workers {
		require.NotNil(t, row.DaysPresent)
	}

	july, err := f.svc.Report(ctx, "2024-07")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(july.TotalEarned))
	assert.True(t, decimal.NewFromInt(50).Equal(july.TotalAdvances))

	_, err = f.svc.Report(ctx, "2024/07")
	assert.ErrorIs(t, err, payroll.ErrInvalidMonth)
}

func TestPayrollService_WorkerReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim")
	f.seedMonth(t, w)

	row, err := f.svc.WorkerReport(ctx, w.ID, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, "karim", row.Username)
	assert.Nil(t, row.DaysPresent)
	assert.True(t, decimal.NewFromInt(170).Equal(row.Net))

	_, err = f.svc.WorkerReport(ctx, "0190a0a0-0000-7000-8000-000000000000", "")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestPayrollService_ExportReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim")
	f.seedMonth(t, w)

	data, filename, err := f.svc.ExportReport(ctx, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, "payroll-2024-06.xlsx", filename)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Payroll 2024-06")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Username", rows[0][0])
	assert.Equal(t, "karim", rows[1][0])
	assert.Equal(t, "Total", rows[2][0])
}
