package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetOrCreateForUpdate returns the (worker, date) record, creating an
	// absent one if needed. Inside a transaction the row stays locked.
	GetOrCreateForUpdate(ctx context.Context, workerID string, date time.Time) (Attendance, error)
	Save(ctx context.Context, a Attendance) (Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	// ListByWorker returns records with from <= date < to, oldest first.
	ListByWorker(ctx context.Context, workerID string, from, to time.Time) ([]Attendance, error)
}
