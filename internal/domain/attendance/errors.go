package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrWorkerInactive     = errors.New("worker is not active")
)
