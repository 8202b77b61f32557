package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, worker_id, date, is_present, salary_snapshot, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(&a.ID, &a.WorkerID, &a.Date, &a.IsPresent, &a.SalarySnapshot, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetOrCreateForUpdate implements attendance.AttendanceRepository. The
// insert is a no-op when the day already exists; the select then locks it.
func (r *attendanceRepositoryImpl) GetOrCreateForUpdate(ctx context.Context, workerID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	day := date.Format(time.DateOnly)

	id, err := newID("attendance")
	if err != nil {
		return attendance.Attendance{}, err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO attendances (id, worker_id, date, is_present, salary_snapshot, created_at, updated_at)
		VALUES ($1, $2, $3::date, FALSE, 0, NOW(), NOW())
		ON CONFLICT (worker_id, date) DO NOTHING
	`, id, workerID, day)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return attendance.Attendance{}, fmt.Errorf("failed to create attendance: worker %s does not exist: %w", workerID, err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE worker_id = $1 AND date = $2::date`
	if inTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	result, err := scanAttendance(q.QueryRow(ctx, query, workerID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return result, nil
}

// Save implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Save(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET is_present = $2, salary_snapshot = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + attendanceColumns

	result, err := scanAttendance(q.QueryRow(ctx, query, a.ID, a.IsPresent, a.SalarySnapshot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return result, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE date = $1::date ORDER BY worker_id`, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByWorker implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByWorker(ctx context.Context, workerID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE worker_id = $1 AND date >= $2::date AND date < $3::date
		ORDER BY date ASC
	`, workerID, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by worker: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	records := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
