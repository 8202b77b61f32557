package notification

import (
	"context"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/pkg/sse"
)

type NotificationService interface {
	// NotifyBooking stores the booking notification using ctx, so it joins
	// the caller's transaction. Delivery happens in Publish.
	NotifyBooking(ctx context.Context, notice BookingNotice) (NotificationResponse, error)
	// Publish pushes a stored notification to connected staff.
	Publish(n NotificationResponse)

	Feed(ctx context.Context) (FeedResponse, error)
	List(ctx context.Context, page, limit int) (NotificationListResponse, error)
	MarkRead(ctx context.Context, id string) (MarkReadResponse, error)
	MarkReadForJob(ctx context.Context, jobID string) error
	MarkAllRead(ctx context.Context) (int64, error)
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)

	Subscribe(workerID string) (<-chan sse.Event, func())
}
