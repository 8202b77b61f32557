package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/storage"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/postgresql"
	attendanceService "github.com/lavage-pro/carwash-backend-go/internal/service/attendance"
	jobService "github.com/lavage-pro/carwash-backend-go/internal/service/job"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWorker(t *testing.T, db *database.DB, username string) worker.Worker {
	t.Helper()
	w, err := postgresql.NewWorkerRepository(db).Create(context.Background(), worker.Worker{
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
		IsActive:     true,
	})
	require.NoError(t, err)
	return w
}

func seedService(t *testing.T, db *database.DB) catalog.Service {
	t.Helper()
	svc, err := postgresql.NewServiceRepository(db).Create(context.Background(), catalog.Service{
		Name:             "Lavage complet",
		Price:            decimal.NewFromInt(1000),
		CommissionAmount: decimal.NewFromInt(100),
		Icon:             catalog.DefaultIcon,
	})
	require.NoError(t, err)
	return svc
}

func TestWorkerRepository_UsernameIsCaseInsensitive(t *testing.T) {
	db := newTestDatabase(t)
	seedWorker(t, db, "Karim")

	_, err := postgresql.NewWorkerRepository(db).Create(context.Background(), worker.Worker{
		Username:     "karim",
		PasswordHash: "x",
		IsActive:     true,
	})

	assert.ErrorIs(t, err, worker.ErrUsernameExists)
}

func TestSettingsRepository_EnsureAndSave(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewSettingsRepository(db)

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, settings.ErrSettingsNotFound)

	require.NoError(t, repo.Ensure(ctx))
	require.NoError(t, repo.Ensure(ctx))

	current, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultMode, current.Mode)

	current.Mode = settings.ModeSalary
	saved, err := repo.Save(ctx, current)
	require.NoError(t, err)
	assert.Equal(t, settings.ModeSalary, saved.Mode)
}

func TestJobRepository_ListFiltersByModeTag(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewJobRepository(db)
	svc := seedService(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	for _, mode := range []settings.Mode{settings.ModeCommission, settings.ModeCommission, settings.ModeSalary} {
		j := job.New(job.SourceManual, mode, &svc, now)
		j.ApplyCustomerDefaults()
		_, err := repo.Create(ctx, j)
		require.NoError(t, err)
	}

	salary := settings.ModeSalary
	items, total, err := repo.List(ctx, job.ListFilter{ModeTag: &salary, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, settings.ModeSalary, items[0].ModeTag)
	require.NotNil(t, items[0].ServiceName)
	assert.Equal(t, "Lavage complet", *items[0].ServiceName)

	items, total, err = repo.List(ctx, job.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)
}

func TestPayrollRepository_SumCommission(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := postgresql.NewJobRepository(db)
	svc := seedService(t, db)
	w := seedWorker(t, db, "karim")
	now := time.Now().UTC().Truncate(time.Second)

	create := func(mode settings.Mode, status job.Status) {
		j := job.New(job.SourceManual, mode, &svc, now)
		j.ApplyCustomerDefaults()
		j.WorkerID = &w.ID
		j.Status = status
		j.Recompute(&svc)
		_, err := jobs.Create(ctx, j)
		require.NoError(t, err)
	}
	create(settings.ModeCommission, job.StatusCompleted)
	create(settings.ModeCommission, job.StatusCompleted)
	create(settings.ModeCommission, job.StatusProcessing)
	create(settings.ModeSalary, job.StatusCompleted)

	sum, err := postgresql.NewPayrollRepository(db).SumCommission(ctx, w.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(200)), "got %s", sum)
}

func TestAttendance_ToggleInsideTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	w := seedWorker(t, db, "karim")
	profiles := postgresql.NewProfileRepository(db)
	_, err := profiles.Upsert(ctx, worker.Profile{WorkerID: w.ID, DailySalary: decimal.NewFromInt(1500)})
	require.NoError(t, err)

	clk := clock.New(time.UTC)
	svc := attendanceService.NewAttendanceService(
		postgresql.NewTxManager(db),
		postgresql.NewAttendanceRepository(db),
		postgresql.NewWorkerRepository(db),
		profiles,
		clk,
	)

	marked, err := svc.TogglePresence(ctx, attendance.ToggleRequest{WorkerID: w.ID})
	require.NoError(t, err)
	assert.True(t, marked.IsPresent)
	assert.True(t, marked.SalarySnapshot.Equal(decimal.NewFromInt(1500)))

	start := clock.StartOfDay(clk.Now())
	total, days, err := postgresql.NewPayrollRepository(db).SumSalarySnapshots(ctx, w.ID, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, days)
	assert.True(t, total.Equal(decimal.NewFromInt(1500)))
}

func TestRevokedTokenRepository_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewRevokedTokenRepository(db)
	now := time.Now()

	require.NoError(t, repo.Revoke(ctx, "stale", now.Add(-time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "live", now.Add(time.Hour)))

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	live, err := repo.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, live)
}

type failingNotifications struct {
	notification.NotificationService
}

func (failingNotifications) NotifyBooking(context.Context, notification.BookingNotice) (notification.NotificationResponse, error) {
	return notification.NotificationResponse{}, errors.New("notifications table unavailable")
}

func TestJobService_CreateBooking_RollsBackJobWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := postgresql.NewJobRepository(db)

	files, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	svc := jobService.NewJobService(
		postgresql.NewTxManager(db),
		jobs,
		postgresql.NewServiceRepository(db),
		postgresql.NewWorkerRepository(db),
		postgresql.NewSettingsRepository(db),
		failingNotifications{},
		files,
		clock.New(time.UTC),
	)

	description := "please clean the seats"
	_, err = svc.CreateBooking(ctx, job.CreateBookingRequest{
		ClientName:  "Sara",
		Phone:       "0555123456",
		Description: &description,
	})
	require.Error(t, err)

	items, total, err := jobs.List(ctx, job.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestJobRepository_SearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewJobRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	for _, plate := range []string{"16_123", "16-456", "100%"} {
		j := job.New(job.SourceManual, settings.ModeCommission, nil, now)
		j.CarPlate = plate
		j.ApplyCustomerDefaults()
		_, err := repo.Create(ctx, j)
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, job.ListFilter{Search: "_", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "16_123", items[0].CarPlate)

	_, total, err = repo.List(ctx, job.ListFilter{Search: "%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
