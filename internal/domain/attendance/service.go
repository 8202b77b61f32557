package attendance

import "context"

type AttendanceService interface {
	// TogglePresence flips the worker's presence for the day atomically with
	// reading the worker's current daily salary.
	TogglePresence(ctx context.Context, req ToggleRequest) (AttendanceResponse, error)
	DailyRoster(ctx context.Context, date string) (DailyRosterResponse, error)
	WorkerMonth(ctx context.Context, workerID string, month string) (WorkerMonthResponse, error)
}
