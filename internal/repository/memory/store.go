// Package memory holds map-backed repositories for service and handler
// tests. They mirror the constraints the PostgreSQL schema enforces:
// cascades, SET NULL references and unique keys.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/advance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

// Store is the shared state behind every repository in this package.
type Store struct {
	mu sync.Mutex

	now func() time.Time

	settings      *settings.Settings
	services      map[string]catalog.Service
	workers       map[string]worker.Worker
	profiles      map[string]worker.Profile
	jobs          map[string]job.Job
	attendances   map[string]attendance.Attendance
	advances      map[string]advance.Advance
	notifications map[string]notification.Notification
	revoked       map[string]time.Time
}

// NewStore returns an empty store. now stamps created_at and updated_at
// where the database would use NOW().
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:           now,
		services:      make(map[string]catalog.Service),
		workers:       make(map[string]worker.Worker),
		profiles:      make(map[string]worker.Profile),
		jobs:          make(map[string]job.Job),
		attendances:   make(map[string]attendance.Attendance),
		advances:      make(map[string]advance.Advance),
		notifications: make(map[string]notification.Notification),
		revoked:       make(map[string]time.Time),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type txManager struct{}

// NewTxManager returns a Transactor that simply runs fn. Each repository
// call is atomic on its own.
func NewTxManager() database.Transactor {
	return txManager{}
}

func (txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func strPtr(s string) *string {
	return &s
}
