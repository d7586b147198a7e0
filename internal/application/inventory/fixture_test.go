package inventory_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/usecase"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/cache"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// countingInvalidator cuenta las invalidaciones del cache del tablero.
type countingInvalidator struct{ n atomic.Int32 }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.n.Add(1)
	return nil
}

type fixture struct {
	store     *memory.Store
	repos     inventory.TxRepos
	stats     *countingInvalidator
	products  *usecase.ProductUseCase
	expand    *inventory.ExpandVariantsUseCase
	movements *inventory.RegisterMovementUseCase
	skus      *inventory.SKUUseCase
	reconcile *inventory.ReconcileUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	stats := &countingInvalidator{}
	log := zerolog.Nop()

	expand := inventory.NewExpandVariantsUseCase(store, stats, log)
	return &fixture{
		store:     store,
		repos:     repos,
		stats:     stats,
		products:  usecase.NewProductUseCase(store, repos.Products, repos.Variants, repos.SKUs, repos.Movements, expand, stats, log),
		expand:    expand,
		movements: inventory.NewRegisterMovementUseCase(store, repos.SKUs, repos.Movements, stats, log),
		skus:      inventory.NewSKUUseCase(store, repos.SKUs, repos.Movements, stats, log),
		reconcile: inventory.NewReconcileUseCase(store, repos.Movements, cache.NewLocalLocker(), stats, log),
	}
}

func newReconcileWithLocker(f *fixture, locker inventory.Locker) *inventory.ReconcileUseCase {
	return inventory.NewReconcileUseCase(f.store, f.repos.Movements, locker, f.stats, zerolog.Nop())
}

// createWidget crea WIDGET con Color{Red,Blue} × Size{S,M,L}.
func (f *fixture) createWidget(t *testing.T) *dto.ProductResponse {
	t.Helper()
	return f.createProduct(t, "WIDGET",
		dto.VariantRequest{Name: "Color", Options: []string{"Red", "Blue"}},
		dto.VariantRequest{Name: "Size", Options: []string{"S", "M", "L"}},
	)
}

func (f *fixture) createProduct(t *testing.T, code string, variants ...dto.VariantRequest) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Code: code, Name: code + " product", Variants: variants,
	})
	require.NoError(t, err)
	return p
}

func skuByCode(t *testing.T, p *dto.ProductResponse, code string) dto.SKUResponse {
	t.Helper()
	for _, s := range p.SKUs {
		if s.Code == code {
			return s
		}
	}
	t.Fatalf("SKU %s no encontrado en %s", code, p.Code)
	return dto.SKUResponse{}
}
