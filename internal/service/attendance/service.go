package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	tx          database.Transactor
	repo        attendance.AttendanceRepository
	workerRepo  worker.WorkerRepository
	profileRepo worker.ProfileRepository
	clock       clock.Clock
}

func NewAttendanceService(
	tx database.Transactor,
	repo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	profileRepo worker.ProfileRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:          tx,
		repo:        repo,
		workerRepo:  workerRepo,
		profileRepo: profileRepo,
		clock:       clk,
	}
}

// TogglePresence implements attendance.AttendanceService. The day row is
// locked before the rate is read, so two toggles of the same day serialize.
func (s *AttendanceServiceImpl) TogglePresence(ctx context.Context, req attendance.ToggleRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var saved attendance.Attendance
	var w worker.Worker
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		w, err = s.workerRepo.GetByID(txCtx, req.WorkerID)
		if err != nil {
			return err
		}
		if !w.IsActive {
			return attendance.ErrWorkerInactive
		}

		record, err := s.repo.GetOrCreateForUpdate(txCtx, w.ID, date)
		if err != nil {
			return err
		}
		profile, err := s.profileRepo.GetOrCreate(txCtx, w.ID, worker.DefaultDailySalary)
		if err != nil {
			return err
		}

		record.Toggle(profile.DailySalary)
		saved, err = s.repo.Save(txCtx, record)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance toggled",
		"worker_id", saved.WorkerID,
		"date", saved.Date.Format(time.DateOnly),
		"is_present", saved.IsPresent,
		"salary_snapshot", saved.SalarySnapshot,
	)

	resp := toResponse(saved)
	resp.WorkerName = w.DisplayName()
	return resp, nil
}

// DailyRoster implements attendance.AttendanceService. Every active worker
// is listed; those without a record for the day show as absent.
func (s *AttendanceServiceImpl) DailyRoster(ctx context.Context, date string) (attendance.DailyRosterResponse, error) {
	if date != "" {
		if _, ok := validator.IsValidDate(date); !ok {
			return attendance.DailyRosterResponse{}, validator.Single("date", "must be YYYY-MM-DD")
		}
	}
	day, err := s.resolveDate(date)
	if err != nil {
		return attendance.DailyRosterResponse{}, err
	}

	workers, err := s.workerRepo.List(ctx, true)
	if err != nil {
		return attendance.DailyRosterResponse{}, err
	}
	records, err := s.repo.ListByDate(ctx, day)
	if err != nil {
		return attendance.DailyRosterResponse{}, err
	}

	byWorker := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byWorker[r.WorkerID] = r
	}

	resp := attendance.DailyRosterResponse{
		Date:          day.Format(time.DateOnly),
		Entries:       make([]attendance.RosterEntry, 0, len(workers)),
		TotalSnapshot: decimal.Zero,
	}
	for _, w := range workers {
		profile, err := s.profileRepo.GetOrCreate(ctx, w.ID, worker.DefaultDailySalary)
		if err != nil {
			return attendance.DailyRosterResponse{}, fmt.Errorf("failed to load profile for worker %s: %w", w.ID, err)
		}

		entry := attendance.RosterEntry{
			WorkerID:       w.ID,
			Username:       w.Username,
			FullName:       w.FullName,
			SalarySnapshot: decimal.Zero,
			DailySalary:    profile.DailySalary,
		}
		if r, ok := byWorker[w.ID]; ok {
			entry.IsPresent = r.IsPresent
			entry.SalarySnapshot = r.SalarySnapshot
		}
		if entry.IsPresent {
			resp.PresentCount++
			resp.TotalSnapshot = resp.TotalSnapshot.Add(entry.SalarySnapshot)
		}
		resp.Entries = append(resp.Entries, entry)
	}

	return resp, nil
}

// WorkerMonth implements attendance.AttendanceService. An empty month means
// the current one.
func (s *AttendanceServiceImpl) WorkerMonth(ctx context.Context, workerID string, month string) (attendance.WorkerMonthResponse, error) {
	if !validator.IsValidUUID(workerID) {
		return attendance.WorkerMonthResponse{}, validator.Single("worker_id", "must be a valid UUID")
	}

	period := payroll.MonthPeriod(s.clock.Now())
	if month != "" {
		start, ok := validator.IsValidMonth(month)
		if !ok {
			return attendance.WorkerMonthResponse{}, validator.Single("month", "must be YYYY-MM")
		}
		period = payroll.MonthPeriod(time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, s.clock.Location()))
	}

	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return attendance.WorkerMonthResponse{}, err
	}

	records, err := s.repo.ListByWorker(ctx, w.ID, period.Start, period.End)
	if err != nil {
		return attendance.WorkerMonthResponse{}, err
	}

	resp := attendance.WorkerMonthResponse{
		WorkerID:      w.ID,
		Month:         period.Label(),
		Days:          make([]attendance.AttendanceResponse, 0, len(records)),
		TotalSnapshot: decimal.Zero,
	}
	for _, r := range records {
		day := toResponse(r)
		day.WorkerName = w.DisplayName()
		resp.Days = append(resp.Days, day)
		if r.IsPresent {
			resp.PresentDays++
			resp.TotalSnapshot = resp.TotalSnapshot.Add(r.SalarySnapshot)
		}
	}

	return resp, nil
}

// resolveDate parses YYYY-MM-DD in the business zone; empty means today.
func (s *AttendanceServiceImpl) resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		return clock.Today(s.clock), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, raw, s.clock.Location())
	if err != nil {
		return time.Time{}, validator.Single("date", "must be YYYY-MM-DD")
	}
	return d, nil
}

func toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:             a.ID,
		WorkerID:       a.WorkerID,
		Date:           a.Date.Format(time.DateOnly),
		IsPresent:      a.IsPresent,
		SalarySnapshot: a.SalarySnapshot,
	}
}
