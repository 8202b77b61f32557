package notification

import (
	"fmt"
	"time"
)

// Type distinguishes plain bookings from ones that need a listen or read.
type Type string

const (
	TypeStandard Type = "standard"
	TypeVoice    Type = "voice"
)

// FeedLimit is how many unread notifications the bell shows.
const FeedLimit = 5

// Notification alerts staff about a web booking. JobID becomes nil once the
// job is deleted.
type Notification struct {
	ID        string
	JobID     *string
	Message   string
	Type      Type
	IsRead    bool
	CreatedAt time.Time
}

// BookingNotice carries what the booking intake knows about a new job.
type BookingNotice struct {
	JobID          string
	ClientName     string
	ServiceName    *string
	HasVoiceNote   bool
	HasDescription bool
}

// Compose returns the message and type for a booking. A voice note or a
// free-text request marks the booking as voice.
func (b BookingNotice) Compose() (string, Type) {
	switch {
	case b.HasVoiceNote:
		return fmt.Sprintf("🎙️ رسالة صوتية من %s", b.ClientName), TypeVoice
	case b.HasDescription:
		return fmt.Sprintf("📝 طلب خاص من %s", b.ClientName), TypeVoice
	case b.ServiceName != nil && *b.ServiceName != "":
		return fmt.Sprintf("🚗 حجز جديد: %s (%s)", b.ClientName, *b.ServiceName), TypeStandard
	default:
		return fmt.Sprintf("🚗 حجز جديد: %s", b.ClientName), TypeStandard
	}
}
