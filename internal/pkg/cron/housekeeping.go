package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
)

// HousekeepingJobs trims tables that only ever grow.
type HousekeepingJobs struct {
	notificationService notification.NotificationService
	revokedTokens       auth.RevokedTokenRepository
	retention           time.Duration
	now                 func() time.Time
}

// NewHousekeepingJobs creates the retention jobs. Read notifications older
// than retention are deleted; logout entries go once their token expired.
func NewHousekeepingJobs(
	notificationService notification.NotificationService,
	revokedTokens auth.RevokedTokenRepository,
	retention time.Duration,
	now func() time.Time,
) *HousekeepingJobs {
	if now == nil {
		now = time.Now
	}
	return &HousekeepingJobs{
		notificationService: notificationService,
		revokedTokens:       revokedTokens,
		retention:           retention,
		now:                 now,
	}
}

// RegisterJobs registers the housekeeping tasks on scheduler
func (j *HousekeepingJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddTask("purge_read_notifications", interval, j.PurgeReadNotifications)
	scheduler.AddTask("purge_revoked_tokens", 1*time.Hour, j.PurgeRevokedTokens)
}

func (j *HousekeepingJobs) PurgeReadNotifications(ctx context.Context) error {
	n, err := j.notificationService.PurgeRead(ctx, j.retention)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Purged read notifications", "count", n, "retention", j.retention)
	}
	return nil
}

func (j *HousekeepingJobs) PurgeRevokedTokens(ctx context.Context) error {
	n, err := j.revokedTokens.PurgeExpired(ctx, j.now())
	if err != nil {
		return err
	}
	metrics.RevokedTokensPurged.Add(float64(n))
	if n > 0 {
		slog.Info("Purged expired revoked tokens", "count", n)
	}
	return nil
}
