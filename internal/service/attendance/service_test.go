package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      attendance.AttendanceService
	workers  worker.WorkerRepository
	profiles worker.ProfileRepository
}

func newFixture() *fixture {
	loc := time.FixedZone("CET", 3600)
	clk := clock.Fixed{At: time.Date(2024, time.June, 15, 23, 30, 0, 0, loc)}
	store := memory.NewStore(clk.Now)
	f := &fixture{
		workers:  memory.NewWorkerRepository(store),
		profiles: memory.NewProfileRepository(store),
	}
	f.svc = NewAttendanceService(memory.NewTxManager(), memory.NewAttendanceRepository(store), f.workers, f.profiles, clk)
	return f
}

func (f *fixture) seedWorker(t *testing.T, username string, salary int64) worker.Worker {
	t.Helper()
	ctx := context.Background()
	w, err := f.workers.Create(ctx, worker.Worker{Username: username, IsActive: true})
	require.NoError(t, err)
	if salary > 0 {
		_, err = f.profiles.Upsert(ctx, worker.Profile{WorkerID: w.ID, DailySalary: decimal.NewFromInt(salary)})
		require.NoError(t, err)
	}
	return w
}

func TestAttendanceService_TogglePresence_Snapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim", 1000)

	present, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	require.NoError(t, err)
	assert.True(t, present.IsPresent)
	assert.True(t, decimal.NewFromInt(1000).Equal(present.SalarySnapshot))
	// today is taken in the business zone
	assert.Equal(t, "2024-06-15", present.Date)
	assert.Equal(t, "karim", present.WorkerName)

	absent, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	require.NoError(t, err)
	assert.False(t, absent.IsPresent)
	assert.True(t, absent.SalarySnapshot.IsZero())
	assert.Equal(t, present.ID, absent.ID)
}

func TestAttendanceService_TogglePresence_ResnapshotsAtCurrentRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim", 1000)

	_, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	require.NoError(t, err)

	_, err = f.profiles.Upsert(ctx, worker.Profile{WorkerID: w.ID, DailySalary: decimal.NewFromInt(1200)})
	require.NoError(t, err)

	_, err = f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	require.NoError(t, err)
	again, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	require.NoError(t, err)

	assert.True(t, again.IsPresent)
	assert.True(t, decimal.NewFromInt(1200).Equal(again.SalarySnapshot))
}

func TestAttendanceService_TogglePresence_CreatesDefaultProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim", 0)

	resp, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID, Date: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", resp.Date)
	assert.True(t, worker.DefaultDailySalary.Equal(resp.SalarySnapshot))

	profile, err := f.profiles.GetByWorkerID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, worker.DefaultDailySalary.Equal(profile.DailySalary))
}

func TestAttendanceService_TogglePresence_InactiveWorker(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim", 1000)
	w.IsActive = false
	_, err := f.workers.Update(ctx, w)
	require.NoError(t, err)

	_, err = f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	assert.ErrorIs(t, err, attendance.ErrWorkerInactive)
}

func TestAttendanceService_TogglePresence_UnknownWorker(t *testing.T) {
	f := newFixture()
	_, err := f.svc.TogglePresence(context.Background(), attendance.ToggleRequest{WorkerID: "0190a0a0-0000-7000-8000-000000000000"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestAttendanceService_DailyRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.seedWorker(t, "alpha", 1000)
	f.seedWorker(t, "beta", 800)

	_, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: a.ID})
	require.NoError(t, err)

	roster, err := f.svc.DailyRoster(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", roster.Date)
	require.Len(t, roster.Entries, 2)
	assert.Equal(t, 1, roster.PresentCount)
	assert.True(t, decimal.NewFromInt(1000).Equal(roster.TotalSnapshot))

	other, err := f.svc.DailyRoster(ctx, "2024-06-14")
	require.NoError(t, err)
	assert.Equal(t, 0, other.PresentCount)
}

func TestAttendanceService_WorkerMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	w := f.seedWorker(t, "karim", 1000)

	for _, day := range []string{"2024-06-01", "2024-06-02", "2024-06-30", "2024-07-01"} {
		_, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID, Date: day})
		require.NoError(t, err)
	}
	_, err := f.svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID, Date: "2024-06-02"})
	require.NoError(t, err)

	month, err := f.svc.WorkerMonth(ctx, w.ID, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", month.Month)
	assert.Len(t, month.Days, 3)
	assert.Equal(t, 2, month.PresentDays)
	assert.True(t, decimal.NewFromInt(2000).Equal(month.TotalSnapshot))

	_, err = f.svc.WorkerMonth(ctx, w.ID, "June")
	assert.Error(t, err)
}
