package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT CATALOG
// ==========================================

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// GetDefaultServices returns a starter price list for a new shop
func GetDefaultServices() []catalog.Service {
	return []catalog.Service{
		{Name: "غسيل خارجي", Price: money(500), CommissionAmount: money(100), Icon: "🚗"},
		{Name: "غسيل داخلي", Price: money(600), CommissionAmount: money(120), Icon: "🧽"},
		{Name: "غسيل كامل", Price: money(1000), CommissionAmount: money(200), Icon: "✨"},
		{Name: "تنظيف المحرك", Price: money(800), CommissionAmount: money(150), Icon: "🔧"},
		{Name: "تلميع", Price: money(2500), CommissionAmount: money(500), Icon: "💎"},
	}
}

// ==========================================
// SEEDING
// ==========================================

// AdminSeed describes the first admin account.
type AdminSeed struct {
	Username string
	Password string
	FullName string
}

// SeedAdmin creates the first admin when the worker table is empty. It is a
// no-op when any worker exists or no password was configured.
func SeedAdmin(ctx context.Context, workers worker.WorkerRepository, workerService worker.WorkerService, seed AdminSeed) (bool, error) {
	existing, err := workers.List(ctx, false)
	if err != nil {
		return false, fmt.Errorf("failed to list workers: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	if seed.Password == "" {
		slog.Warn("No workers exist and ADMIN_PASSWORD is empty; skipping admin bootstrap")
		return false, nil
	}

	admin, err := workerService.Create(ctx, worker.CreateWorkerRequest{
		Username: seed.Username,
		FullName: seed.FullName,
		Password: seed.Password,
		IsAdmin:  true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	slog.Info("Bootstrap admin created", "worker_id", admin.ID, "username", admin.Username)
	return true, nil
}

// SeedCatalog fills an empty catalog with GetDefaultServices.
func SeedCatalog(ctx context.Context, services catalog.ServiceRepository) (int, error) {
	existing, err := services.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list services: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	for _, svc := range GetDefaultServices() {
		if _, err := services.Create(ctx, svc); err != nil {
			return created, fmt.Errorf("failed to seed service %q: %w", svc.Name, err)
		}
		created++
	}

	slog.Info("Default catalog seeded", "count", created)
	return created, nil
}
