package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct{ s *Store }

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

// calendarDay mirrors a DATE column read back through pgx: midnight UTC.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *attendanceRepository) GetOrCreateForUpdate(ctx context.Context, workerID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := calendarDay(date)
	for _, a := range r.s.attendances {
		if a.WorkerID == workerID && a.Date.Equal(day) {
			return a, nil
		}
	}
	if _, ok := r.s.workers[workerID]; !ok {
		return attendance.Attendance{}, worker.ErrWorkerNotFound
	}
	now := r.s.now()
	a := attendance.Attendance{
		ID:             newID(),
		WorkerID:       workerID,
		Date:           day,
		SalarySnapshot: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.s.attendances[a.ID] = a
	return a, nil
}

func (r *attendanceRepository) Save(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.attendances[a.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	existing.IsPresent = a.IsPresent
	existing.SalarySnapshot = a.SalarySnapshot
	existing.UpdatedAt = r.s.now()
	r.s.attendances[a.ID] = existing
	return existing, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := calendarDay(date)
	out := []attendance.Attendance{}
	for _, a := range r.s.attendances {
		if a.Date.Equal(day) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerID < out[j].WorkerID })
	return out, nil
}

func (r *attendanceRepository) ListByWorker(ctx context.Context, workerID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	start, end := calendarDay(from), calendarDay(to)
	out := []attendance.Attendance{}
	for _, a := range r.s.attendances {
		if a.WorkerID == workerID && !a.Date.Before(start) && a.Date.Before(end) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
