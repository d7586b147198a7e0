package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/usecase"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type productFixture struct {
	repos     inventory.TxRepos
	uc        *usecase.ProductUseCase
	movements *inventory.RegisterMovementUseCase
}

func newProductFixture() *productFixture {
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	expand := inventory.NewExpandVariantsUseCase(store, nil, log)
	return &productFixture{
		repos:     repos,
		uc:        usecase.NewProductUseCase(store, repos.Products, repos.Variants, repos.SKUs, repos.Movements, expand, nil, log),
		movements: inventory.NewRegisterMovementUseCase(store, repos.SKUs, repos.Movements, nil, log),
	}
}

func widgetRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:    " WIDGET ",
		Name:    "Widget",
		TaxCode: "IVA19",
		Variants: []dto.VariantRequest{
			{Name: "Color", Options: []string{"Red", "Blue"}},
			{Name: "Size", Options: []string{"S", "M", "L"}},
		},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, got %v", err)
	return verr.FieldMap()
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), widgetRequest())
	require.NoError(t, err)

	assert.Equal(t, "WIDGET", out.Code, "el código se normaliza")
	assert.Equal(t, int64(1), out.ProductID)
	assert.True(t, out.Active, "activo por defecto")
	assert.True(t, out.TotalStock.IsZero())
	require.Len(t, out.Variants, 2)
	assert.Equal(t, "Color", out.Variants[0].Name)
	assert.Equal(t, "Red", out.Variants[0].Options[0].Value)
	assert.Len(t, out.SKUs, 6)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	_, err := f.uc.Create(ctx, widgetRequest())
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, dto.CreateProductRequest{Code: "WIDGET", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	n, err := f.repos.Products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProductCreate_Validacion(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		req   dto.CreateProductRequest
		field string
	}{
		{"sin código", dto.CreateProductRequest{Name: "X"}, "code"},
		{"sin nombre", dto.CreateProductRequest{Code: "X"}, "name"},
		{"código con delimitador", dto.CreateProductRequest{Code: "A-B", Name: "X"}, "code"},
		{
			"dimensión repetida",
			dto.CreateProductRequest{Code: "X", Name: "X", Variants: []dto.VariantRequest{
				{Name: "Color", Options: []string{"Red"}},
				{Name: "Color", Options: []string{"Blue"}},
			}},
			"variants[1].name",
		},
		{
			"opción repetida",
			dto.CreateProductRequest{Code: "X", Name: "X", Variants: []dto.VariantRequest{
				{Name: "Color", Options: []string{"Red", " Red"}},
			}},
			"variants[0].options[1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, fieldsOf(t, err), tt.field)
		})
	}

	n, err := f.repos.Products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / List / CodeExists
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	p, err := f.uc.Create(ctx, widgetRequest())
	require.NoError(t, err)

	name := "Widget Pro"
	inactive := false
	out, err := f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", out.Name)
	assert.False(t, out.Active)
	assert.Equal(t, "WIDGET", out.Code)
	assert.Equal(t, "IVA19", out.TaxCode, "los campos omitidos no cambian")

	blank := "   "
	_, err = f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &blank})
	assert.Contains(t, fieldsOf(t, err), "name")

	_, err = f.uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_Paginado(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	for _, code := range []string{"A1", "A2", "A3"} {
		_, err := f.uc.Create(ctx, dto.CreateProductRequest{Code: code, Name: code})
		require.NoError(t, err)
	}

	page, err := f.uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, "A3", page.Items[0].Code, "más recientes primero")

	rest, err := f.uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, "A1", rest.Items[0].Code)
}

func TestProductCodeExists(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	_, err := f.uc.Create(ctx, widgetRequest())
	require.NoError(t, err)

	ok, err := f.uc.CodeExists(ctx, "WIDGET")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.uc.CodeExists(ctx, "GADGET")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.uc.CodeExists(ctx, " ")
	assert.Contains(t, fieldsOf(t, err), "code")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_Cascada(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture()
	p, err := f.uc.Create(ctx, widgetRequest())
	require.NoError(t, err)
	_, _, err = f.movements.AddStock(ctx, p.SKUs[0].ID, decimal.NewFromInt(3), "")
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, p.ID))

	_, err = f.uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	skus, err := f.repos.SKUs.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, skus)

	rows, err := f.repos.Movements.ListByDateRange(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, f.uc.Delete(ctx, p.ID), domain.ErrNotFound)

	// el código queda libre
	_, err = f.uc.Create(ctx, widgetRequest())
	assert.NoError(t, err)
}
