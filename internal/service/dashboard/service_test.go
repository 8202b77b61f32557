package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/dashboard"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc         dashboard.DashboardService
	settings    settings.SettingsRepository
	workers     worker.WorkerRepository
	profiles    worker.ProfileRepository
	jobs        job.JobRepository
	attendances attendance.AttendanceRepository
	wash        catalog.Service
}

func newFixture() *fixture {
	clk := clock.Fixed{At: time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clk.Now)
	f := &fixture{
		settings:    memory.NewSettingsRepository(store),
		workers:     memory.NewWorkerRepository(store),
		profiles:    memory.NewProfileRepository(store),
		jobs:        memory.NewJobRepository(store),
		attendances: memory.NewAttendanceRepository(store),
		wash: catalog.Service{
			ID:               "svc-wash",
			Price:            decimal.NewFromInt(500),
			CommissionAmount: decimal.NewFromInt(100),
		},
	}
	f.svc = NewDashboardService(memory.NewDashboardRepository(store), f.settings, f.profiles, clk)
	return f
}

func (f *fixture) seedJob(t *testing.T, mode settings.Mode, status job.Status, at time.Time) {
	t.Helper()
	j := job.New(job.SourceManual, mode, &f.wash, at)
	j.Status = status
	j.Recompute(&f.wash)
	_, err := f.jobs.Create(context.Background(), j)
	require.NoError(t, err)
}

func (f *fixture) seedWorker(t *testing.T, username string, salary int64, present bool) worker.Worker {
	t.Helper()
	ctx := context.Background()
	w, err := f.workers.Create(ctx, worker.Worker{Username: username, IsActive: true})
	require.NoError(t, err)
	if salary > 0 {
		_, err = f.profiles.Upsert(ctx, worker.Profile{WorkerID: w.ID, DailySalary: decimal.NewFromInt(salary)})
		require.NoError(t, err)
	}
	if present {
		a, err := f.attendances.GetOrCreateForUpdate(ctx, w.ID, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		a.Toggle(decimal.NewFromInt(salary))
		_, err = f.attendances.Save(ctx, a)
		require.NoError(t, err)
	}
	return w
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
}

func TestDashboardService_Commission(t *testing.T) {
	f := newFixture()
	f.seedJob(t, settings.ModeCommission, job.StatusCompleted, at(time.June, 15, 8))
	f.seedJob(t, settings.ModeCommission, job.StatusProcessing, at(time.June, 15, 9))
	f.seedJob(t, settings.ModeCommission, job.StatusCanceled, at(time.June, 15, 9))
	f.seedJob(t, settings.ModeSalary, job.StatusCompleted, at(time.June, 15, 9))
	f.seedJob(t, settings.ModeCommission, job.StatusCompleted, at(time.June, 13, 12))
	f.seedJob(t, settings.ModeCommission, job.StatusCompleted, at(time.June, 1, 12))
	f.seedJob(t, settings.ModeCommission, job.StatusCompleted, at(time.January, 5, 12))
	f.seedJob(t, settings.ModeCommission, job.StatusCompleted, time.Date(2023, time.December, 31, 12, 0, 0, 0, time.UTC))

	got, err := f.svc.Commission(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1000).Equal(got.TodayRevenue))
	assert.True(t, decimal.NewFromInt(100).Equal(got.TodayCommission))
	assert.True(t, decimal.NewFromInt(900).Equal(got.TodayProfit))
	assert.Equal(t, int64(1), got.ProcessingCount)
	assert.True(t, decimal.NewFromInt(1700).Equal(got.MonthProfit), got.MonthProfit.String())
	assert.True(t, decimal.NewFromInt(2100).Equal(got.YearProfit), got.YearProfit.String())

	require.Len(t, got.Last7Days, 7)
	assert.Equal(t, "2024-06-09", got.Last7Days[0].Date)
	assert.Equal(t, "2024-06-15", got.Last7Days[6].Date)
	assert.True(t, got.Last7Days[0].Revenue.IsZero())
	assert.True(t, decimal.NewFromInt(500).Equal(got.Last7Days[4].Revenue))
	assert.True(t, decimal.NewFromInt(400).Equal(got.Last7Days[4].Profit))
	assert.True(t, decimal.NewFromInt(900).Equal(got.Last7Days[6].Profit))
}

func TestDashboardService_Salary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedWorker(t, "alpha", 1000, true)
	beta := f.seedWorker(t, "beta", 0, false)
	f.seedWorker(t, "gamma", 800, true)
	f.seedJob(t, settings.ModeSalary, job.StatusCompleted, at(time.June, 15, 8))
	f.seedJob(t, settings.ModeSalary, job.StatusPending, at(time.June, 15, 9))
	f.seedJob(t, settings.ModeSalary, job.StatusCanceled, at(time.June, 15, 9))
	f.seedJob(t, settings.ModeCommission, job.StatusCompleted, at(time.June, 15, 9))
	f.seedJob(t, settings.ModeSalary, job.StatusCompleted, at(time.June, 14, 9))

	got, err := f.svc.Salary(ctx)
	require.NoError(t, err)

	require.Len(t, got.Workers, 3)
	assert.Equal(t, 2, got.PresentCount)
	assert.True(t, decimal.NewFromInt(1800).Equal(got.TotalSalary))
	assert.True(t, decimal.NewFromInt(1000).Equal(got.TodayRevenue))
	assert.True(t, decimal.NewFromInt(-800).Equal(got.TodayProfit))
	assert.Len(t, got.LatestJobs, 2)

	// beta had no profile and gets the default one
	assert.Equal(t, "beta", got.Workers[1].Username)
	assert.True(t, worker.DefaultDailySalary.Equal(got.Workers[1].DailySalary))
	profile, err := f.profiles.GetByWorkerID(ctx, beta.ID)
	require.NoError(t, err)
	assert.True(t, worker.DefaultDailySalary.Equal(profile.DailySalary))
}

func TestDashboardService_Get_DispatchesOnMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	got, err := f.svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ModeCommission, got.Mode)
	assert.Equal(t, "2024-06-15", got.Date)
	assert.NotNil(t, got.Commission)
	assert.Nil(t, got.Salary)

	_, err = f.settings.Save(ctx, settings.Settings{Mode: settings.ModeSalary})
	require.NoError(t, err)

	got, err = f.svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ModeSalary, got.Mode)
	assert.Nil(t, got.Commission)
	require.NotNil(t, got.Salary)
	assert.Empty(t, got.Salary.LatestJobs)
}
