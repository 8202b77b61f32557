package job

import "context"

type JobService interface {
	// CreateManual records a front-desk job; service and worker are required.
	CreateManual(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	// CreateBooking records a web booking and its notification atomically.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (JobResponse, error)
	// Get also marks the job's notifications as read.
	Get(ctx context.Context, id string) (JobResponse, error)
	List(ctx context.Context, filter JobFilter) (JobListResponse, error)
	ListBookings(ctx context.Context, filter JobFilter) (JobListResponse, error)
	Update(ctx context.Context, req UpdateJobRequest) (JobResponse, error)
	Complete(ctx context.Context, id string) (JobResponse, error)
	Delete(ctx context.Context, id string) error
}
