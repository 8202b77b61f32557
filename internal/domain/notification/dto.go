package notification

import "time"

type NotificationResponse struct {
	ID        string    `json:"id"`
	JobID     *string   `json:"job_id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		JobID:     n.JobID,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// FeedResponse backs the notification bell.
type FeedResponse struct {
	UnreadCount int64                  `json:"unread_count"`
	Latest      []NotificationResponse `json:"latest"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalItems    int64                  `json:"total_items"`
	TotalPages    int                    `json:"total_pages"`
}

// MarkReadResponse tells the client where to go next. JobDeleted means the
// notification pointed at a job that no longer exists and was removed.
type MarkReadResponse struct {
	ID         string  `json:"id"`
	JobID      *string `json:"job_id"`
	JobDeleted bool    `json:"job_deleted"`
}
