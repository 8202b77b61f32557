package notification

import (
	"context"
	"time"
)

type NotificationRepository interface {
	// UpsertForJob keeps one notification per job: a second call for the
	// same job rewrites the existing row and marks it unread.
	UpsertForJob(ctx context.Context, n Notification) (Notification, error)
	GetByID(ctx context.Context, id string) (Notification, error)
	CountUnread(ctx context.Context) (int64, error)
	ListUnread(ctx context.Context, limit int) ([]Notification, error)
	List(ctx context.Context, limit, offset int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkReadByJob(ctx context.Context, jobID string) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	// DeleteReadBefore removes read notifications created before cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
