package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/backend"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Inventory: config.InventoryConfig{
			LowStockThreshold: decimal.NewFromInt(10),
			UnitValue:         decimal.NewFromInt(10),
			RecentLimit:       5,
			DashboardCacheTTL: time.Minute,
		},
	}
}

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	b, err := backend.Open(ctx, memoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.StorageMemory, b.Driver)
	require.NotNil(t, b.TxRunner)
	require.NotNil(t, b.Stats)
	require.NotNil(t, b.Locker)

	err = b.TxRunner.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Products.Create(ctx, &entity.Product{ID: "p1", Code: "WIDGET", Name: "Widget"})
	})
	require.NoError(t, err)

	got, err := b.Repos.Products.GetByCode(ctx, "WIDGET")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"

	_, err := backend.Open(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
