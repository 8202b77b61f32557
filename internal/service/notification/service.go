package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/sse"
)

// EventNotification is the SSE event name for a new booking notification.
const EventNotification = "notification"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type service struct {
	repo    notification.NotificationRepository
	jobRepo job.JobRepository
	hub     *sse.Hub
	clock   clock.Clock
}

// NewNotificationService creates a notification service that pushes new
// notifications to every connected staff member through hub.
func NewNotificationService(repo notification.NotificationRepository, jobRepo job.JobRepository, hub *sse.Hub, clk clock.Clock) notification.NotificationService {
	return &service{repo: repo, jobRepo: jobRepo, hub: hub, clock: clk}
}

// NotifyBooking stores (or refreshes) the notification for a booking.
func (s *service) NotifyBooking(ctx context.Context, notice notification.BookingNotice) (notification.NotificationResponse, error) {
	message, typ := notice.Compose()
	jobID := notice.JobID

	stored, err := s.repo.UpsertForJob(ctx, notification.Notification{
		JobID:   &jobID,
		Message: message,
		Type:    typ,
	})
	if err != nil {
		return notification.NotificationResponse{}, fmt.Errorf("failed to store booking notification: %w", err)
	}
	return notification.ToResponse(stored), nil
}

// Publish fans the notification out to every subscriber.
func (s *service) Publish(n notification.NotificationResponse) {
	delivered := s.hub.Broadcast(sse.Event{Event: EventNotification, Data: n})
	if open := s.hub.TotalSubscribers(); delivered < open {
		slog.Warn("Notification skipped slow streams", "notification_id", n.ID, "delivered", delivered, "streams", open)
		return
	}
	slog.Debug("Notification published", "notification_id", n.ID, "streams", delivered)
}

// Feed returns the unread count with the newest unread notifications.
func (s *service) Feed(ctx context.Context) (notification.FeedResponse, error) {
	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		return notification.FeedResponse{}, err
	}
	latest, err := s.repo.ListUnread(ctx, notification.FeedLimit)
	if err != nil {
		return notification.FeedResponse{}, err
	}

	return notification.FeedResponse{UnreadCount: count, Latest: toResponses(latest)}, nil
}

// List returns a page of every notification, read or not.
func (s *service) List(ctx context.Context, page, limit int) (notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	return notification.NotificationListResponse{
		Notifications: toResponses(items),
		Page:          page,
		Limit:         limit,
		TotalItems:    total,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// MarkRead marks the notification read, or removes it when the job it
// points at is gone.
func (s *service) MarkRead(ctx context.Context, id string) (notification.MarkReadResponse, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notification.MarkReadResponse{}, err
	}

	jobGone := n.JobID == nil
	if !jobGone {
		_, err := s.jobRepo.GetByID(ctx, *n.JobID)
		switch {
		case errors.Is(err, job.ErrJobNotFound):
			jobGone = true
		case err != nil:
			return notification.MarkReadResponse{}, err
		}
	}

	if jobGone {
		if err := s.repo.Delete(ctx, id); err != nil {
			return notification.MarkReadResponse{}, err
		}
		slog.Info("Removed notification for deleted job", "notification_id", id)
		return notification.MarkReadResponse{ID: id, JobDeleted: true}, nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return notification.MarkReadResponse{}, err
	}
	return notification.MarkReadResponse{ID: id, JobID: n.JobID}, nil
}

// MarkReadForJob marks the job's notification read. Opening a job counts
// as reading its notification.
func (s *service) MarkReadForJob(ctx context.Context, jobID string) error {
	return s.repo.MarkReadByJob(ctx, jobID)
}

func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

// PurgeRead deletes read notifications older than olderThan.
func (s *service) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-olderThan)
	n, err := s.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.NotificationsPurged.Add(float64(n))
	return n, nil
}

// Subscribe registers an SSE client for workerID.
func (s *service) Subscribe(workerID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(workerID)
}

func toResponses(items []notification.Notification) []notification.NotificationResponse {
	out := make([]notification.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, notification.ToResponse(n))
	}
	return out
}
