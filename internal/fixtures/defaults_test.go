package fixtures

import (
	"context"
	"testing"

	"github.com/lavage-pro/carwash-backend-go/internal/repository/memory"
	workerService "github.com/lavage-pro/carwash-backend-go/internal/service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin_OnlyOnEmptyTable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	workers := memory.NewWorkerRepository(store)
	svc := workerService.NewWorkerService(memory.NewTxManager(), workers, memory.NewProfileRepository(store))
	seed := AdminSeed{Username: "admin", Password: "change-me", FullName: "Administrator"}

	created, err := SeedAdmin(ctx, workers, svc, seed)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := workers.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsActive)

	created, err = SeedAdmin(ctx, workers, svc, seed)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSeedAdmin_SkipsWithoutPassword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	workers := memory.NewWorkerRepository(store)
	svc := workerService.NewWorkerService(memory.NewTxManager(), workers, memory.NewProfileRepository(store))

	created, err := SeedAdmin(ctx, workers, svc, AdminSeed{Username: "admin"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	ctx := context.Background()
	services := memory.NewServiceRepository(memory.NewStore(nil))

	n, err := SeedCatalog(ctx, services)
	require.NoError(t, err)
	assert.Equal(t, len(GetDefaultServices()), n)

	n, err = SeedCatalog(ctx, services)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := services.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(GetDefaultServices()))
}
