package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
)

type notificationRepository struct{ s *Store }

func NewNotificationRepository(s *Store) notification.NotificationRepository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) UpsertForJob(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if n.JobID != nil {
		for id, existing := range r.s.notifications {
			if existing.JobID != nil && *existing.JobID == *n.JobID {
				existing.Message = n.Message
				existing.Type = n.Type
				existing.IsRead = false
				existing.CreatedAt = now
				r.s.notifications[id] = existing
				return existing, nil
			}
		}
	}
	if n.ID == "" {
		n.ID = newID()
	}
	n.IsRead = false
	n.CreatedAt = now
	r.s.notifications[n.ID] = n
	return n, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotificationNotFound
	}
	return n, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, item := range r.s.notifications {
		if !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *notificationRepository) ListUnread(ctx context.Context, limit int) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []notification.Notification{}
	for _, n := range r.sortedLocked() {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return paginate(out, limit, 0), nil
}

func (r *notificationRepository) List(ctx context.Context, limit, offset int) ([]notification.Notification, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := r.sortedLocked()
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return notification.ErrNotificationNotFound
	}
	n.IsRead = true
	r.s.notifications[id] = n
	return nil
}

func (r *notificationRepository) MarkReadByJob(ctx context.Context, jobID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, n := range r.s.notifications {
		if n.JobID != nil && *n.JobID == jobID {
			n.IsRead = true
			r.s.notifications[id] = n
		}
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, n := range r.s.notifications {
		if !n.IsRead {
			n.IsRead = true
			r.s.notifications[id] = n
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notifications[id]; !ok {
		return notification.ErrNotificationNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for id, n := range r.s.notifications {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(r.s.notifications, id)
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) sortedLocked() []notification.Notification {
	out := make([]notification.Notification, 0, len(r.s.notifications))
	for _, n := range r.s.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
