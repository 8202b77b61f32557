package notification

import (
	"context"
	"testing"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/clock"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/sse"
	"github.com/lavage-pro/carwash-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clk  *clock.Fixed
	svc  notification.NotificationService
	repo notification.NotificationRepository
	jobs job.JobRepository
	hub  *sse.Hub
}

func newFixture() *fixture {
	clk := &clock.Fixed{At: time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore(func() time.Time { return clk.At })
	f := &fixture{
		clk:  clk,
		repo: memory.NewNotificationRepository(store),
		jobs: memory.NewJobRepository(store),
		hub:  sse.NewHub(),
	}
	f.svc = NewNotificationService(f.repo, f.jobs, f.hub, clk)
	return f
}

func (f *fixture) booking(t *testing.T, client string) (job.Job, notification.NotificationResponse) {
	t.Helper()
	ctx := context.Background()
	j, err := f.jobs.Create(ctx, job.New(job.SourceWebsite, settings.ModeCommission, nil, f.clk.At))
	require.NoError(t, err)

	n, err := f.svc.NotifyBooking(ctx, notification.BookingNotice{JobID: j.ID, ClientName: client})
	require.NoError(t, err)
	return j, n
}

func TestNotificationService_NotifyBooking_OnePerJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	j, first := f.booking(t, "Sara")
	require.NoError(t, f.repo.MarkReadByJob(ctx, j.ID))

	second, err := f.svc.NotifyBooking(ctx, notification.BookingNotice{JobID: j.ID, ClientName: "Sara", HasVoiceNote: true})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, notification.TypeVoice, second.Type)
	assert.False(t, second.IsRead)

	list, err := f.svc.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalItems)
	assert.Equal(t, 20, list.Limit)
}

func TestNotificationService_Feed_CapsLatest(t *testing.T) {
	f := newFixture()
	for i := 0; i < 7; i++ {
		f.booking(t, "client")
	}

	feed, err := f.svc.Feed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), feed.UnreadCount)
	assert.Len(t, feed.Latest, notification.FeedLimit)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	j, n := f.booking(t, "Sara")

	resp, err := f.svc.MarkRead(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, resp.JobDeleted)
	require.NotNil(t, resp.JobID)
	assert.Equal(t, j.ID, *resp.JobID)

	feed, err := f.svc.Feed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), feed.UnreadCount)
}

func TestNotificationService_MarkRead_JobGone(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	j, n := f.booking(t, "Sara")
	require.NoError(t, f.jobs.Delete(ctx, j.ID))

	resp, err := f.svc.MarkRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, resp.JobDeleted)
	assert.Nil(t, resp.JobID)

	_, err = f.repo.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.MarkRead(context.Background(), "0190a0a0-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.booking(t, "a")
	f.booking(t, "b")

	n, err := f.svc.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = f.svc.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestNotificationService_PurgeRead_KeepsUnreadAndRecent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, old := f.booking(t, "old")
	f.booking(t, "unread")
	_, err := f.svc.MarkRead(ctx, old.ID)
	require.NoError(t, err)

	f.clk.At = f.clk.At.Add(40 * 24 * time.Hour)
	_, recent := f.booking(t, "recent")
	_, err = f.svc.MarkRead(ctx, recent.ID)
	require.NoError(t, err)

	purged, err := f.svc.PurgeRead(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	list, err := f.svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalItems)
}

func TestNotificationService_PublishReachesSubscribers(t *testing.T) {
	f := newFixture()
	events, cleanup := f.svc.Subscribe("worker-1")
	defer cleanup()

	_, n := f.booking(t, "Sara")
	f.svc.Publish(n)

	ev := <-events
	assert.Equal(t, EventNotification, ev.Event)
	assert.Equal(t, n, ev.Data)
}
