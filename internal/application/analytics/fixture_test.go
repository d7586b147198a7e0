package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/usecase"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store   *memory.Store
	repos   inventory.TxRepos
	product *dto.ProductResponse
	skus    map[string]string // código → id
}

// newFixture crea WIDGET con Color{Red,Blue} × Size{S,M,L} sobre el backend en memoria.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	expand := inventory.NewExpandVariantsUseCase(store, nil, log)
	products := usecase.NewProductUseCase(store, repos.Products, repos.Variants, repos.SKUs, repos.Movements, expand, nil, log)

	p, err := products.Create(context.Background(), dto.CreateProductRequest{
		Code: "WIDGET",
		Name: "Widget",
		Variants: []dto.VariantRequest{
			{Name: "Color", Options: []string{"Red", "Blue"}},
			{Name: "Size", Options: []string{"S", "M", "L"}},
		},
	})
	require.NoError(t, err)

	f := &fixture{store: store, repos: repos, product: p, skus: map[string]string{}}
	for _, s := range p.SKUs {
		f.skus[s.Code] = s.ID
	}
	return f
}

// record escribe un movimiento con fecha fija directamente en el libro.
func (f *fixture) record(t *testing.T, skuCode, movementType, qty string, at time.Time) {
	t.Helper()
	id, ok := f.skus[skuCode]
	require.True(t, ok, skuCode)
	err := f.store.Run(context.Background(), func(repos inventory.TxRepos) error {
		m := &entity.StockMovement{
			ID:        uuid.New().String(),
			SKUID:     id,
			Type:      movementType,
			Quantity:  decimal.RequireFromString(qty),
			CreatedAt: at,
		}
		if err := repos.Movements.Create(context.Background(), m); err != nil {
			return err
		}
		return repos.Products.AdjustTotalStock(context.Background(), f.product.ID, m.Signed())
	})
	require.NoError(t, err)
}

func localDate(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}
