package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, job_id, message, type, is_read, created_at`

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.JobID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	return n, err
}

// UpsertForJob keeps a single row per job. A repeat rewrites the message
// and puts the notification back into the unread feed.
func (r *notificationRepository) UpsertForJob(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		id, err := newID("notification")
		if err != nil {
			return notification.Notification{}, err
		}
		n.ID = id
	}

	query := `
		INSERT INTO notifications (id, job_id, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		ON CONFLICT (job_id) WHERE job_id IS NOT NULL DO UPDATE
			SET message = EXCLUDED.message, type = EXCLUDED.type, is_read = FALSE, created_at = EXCLUDED.created_at
		RETURNING ` + notificationColumns

	result, err := scanNotification(q.QueryRow(ctx, query, n.ID, n.JobID, n.Message, n.Type))
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to upsert notification: %w", err)
	}
	return result, nil
}

// GetByID retrieves a notification by ID
func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanNotification(q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}
	return result, nil
}

// CountUnread counts unread notifications
func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE is_read = FALSE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// ListUnread returns the newest unread notifications
func (r *notificationRepository) ListUnread(ctx context.Context, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE is_read = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

// List returns a page of every notification, newest first
func (r *notificationRepository) List(ctx context.Context, limit, offset int) ([]notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	list, err := collectNotifications(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// MarkRead marks a single notification as read
func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkReadByJob marks the job's notification as read, if it has one
func (r *notificationRepository) MarkReadByJob(ctx context.Context, jobID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE job_id = $1 AND is_read = FALSE`, jobID); err != nil {
		return fmt.Errorf("failed to mark job notifications as read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification as read
func (r *notificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a notification
func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// DeleteReadBefore removes read notifications older than cutoff
func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

func collectNotifications(rows pgx.Rows) ([]notification.Notification, error) {
	list := []notification.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
