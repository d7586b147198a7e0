package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/usecase"
	domaininv "github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/backend"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/pdf"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/xlsx"
	apphttp "github.com/ashiqmuneeb/Inventory-Pro/internal/interfaces/http"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el backend en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "inventory-test"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Inventory: config.InventoryConfig{
			LowStockThreshold: decimal.NewFromInt(10),
			UnitValue:         decimal.NewFromInt(10),
			RecentLimit:       5,
			DashboardCacheTTL: time.Minute,
		},
	}
	log := zerolog.Nop()
	be, err := backend.Open(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(be.Close)

	r := be.Repos
	policy := domaininv.StockPolicy{
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		UnitValue:         cfg.Inventory.UnitValue,
		RecentLimit:       cfg.Inventory.RecentLimit,
	}
	expand := inventory.NewExpandVariantsUseCase(be.TxRunner, be.Stats, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:          cfg.App.Name,
		ProductUC:        usecase.NewProductUseCase(be.TxRunner, r.Products, r.Variants, r.SKUs, r.Movements, expand, be.Stats, log),
		ExpandVariants:   expand,
		SKUUC:            inventory.NewSKUUseCase(be.TxRunner, r.SKUs, r.Movements, be.Stats, log),
		RegisterMovement: inventory.NewRegisterMovementUseCase(be.TxRunner, r.SKUs, r.Movements, be.Stats, log),
		StockReport:      appanalytics.NewStockReportUseCase(r.Movements, log, xlsx.NewExcelReportGenerator(), pdf.NewMarotoReportGenerator("")),
		Reconcile:        inventory.NewReconcileUseCase(be.TxRunner, r.Movements, be.Locker, be.Stats, log),
		DashboardUC:      appanalytics.NewDashboardUseCase(r.Products, r.Movements, be.Stats, policy, log),
	})
	return app
}

// do ejecuta la petición y devuelve status y cuerpo.
func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createWidget(t *testing.T, app *fiber.App) dto.ProductResponse {
	t.Helper()
	status, raw := do(t, app, http.MethodPost, "/api/products", map[string]any{
		"code": "WIDGET",
		"name": "Widget",
		"variants": []map[string]any{
			{"name": "Color", "options": []string{"Red", "Blue"}},
			{"name": "Size", "options": []string{"S", "M", "L"}},
		},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.ProductResponse](t, raw)
}

func skuID(t *testing.T, p dto.ProductResponse, code string) string {
	t.Helper()
	for _, s := range p.SKUs {
		if s.Code == code {
			return s.ID
		}
	}
	t.Fatalf("SKU %s no encontrado", code)
	return ""
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	status, raw := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"status":"ok"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CRUD(t *testing.T) {
	app := buildTestApp(t)
	p := createWidget(t, app)
	assert.Len(t, p.SKUs, 6)

	status, raw := do(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.ProductResponse](t, raw)
	assert.Equal(t, "WIDGET", got.Code)
	assert.Len(t, got.Variants, 2)

	status, raw = do(t, app, http.MethodGet, "/api/products?limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.ProductListResponse](t, raw)
	assert.Equal(t, 1, list.Page.Total)

	status, raw = do(t, app, http.MethodPut, "/api/products/"+p.ID, map[string]any{"name": "Widget 2"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "Widget 2", decode[dto.ProductResponse](t, raw).Name)

	status, _ = do(t, app, http.MethodDelete, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = do(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

func TestProducts_ErroresDeEntrada(t *testing.T) {
	app := buildTestApp(t)
	createWidget(t, app)

	status, raw := do(t, app, http.MethodPost, "/api/products", map[string]any{"code": "WIDGET", "name": "Otro"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/api/products", map[string]any{"code": "X"})
	require.Equal(t, http.StatusBadRequest, status)
	e := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Fields, "name")

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_CheckCode(t *testing.T) {
	app := buildTestApp(t)
	createWidget(t, app)

	status, raw := do(t, app, http.MethodGet, "/api/products/check-code?code=WIDGET", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[dto.CodeCheckResponse](t, raw).Exists)

	status, raw = do(t, app, http.MethodGet, "/api/products/check-code?code=NOPE", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[dto.CodeCheckResponse](t, raw).Exists)

	status, _ = do(t, app, http.MethodGet, "/api/products/check-code", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProducts_GenerateVariants(t *testing.T) {
	app := buildTestApp(t)
	p := createWidget(t, app)

	status, raw := do(t, app, http.MethodPost, "/api/products/"+p.ID+"/generate-variants", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, 0, decode[dto.GenerateVariantsResponse](t, raw).CreatedCount)

	status, raw = do(t, app, http.MethodPost, "/api/products", map[string]any{"code": "PLAIN", "name": "Plain"})
	require.Equal(t, http.StatusCreated, status)
	plain := decode[dto.ProductResponse](t, raw)

	status, raw = do(t, app, http.MethodPost, "/api/products/"+plain.ID+"/generate-variants", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "variants")

	status, _ = do(t, app, http.MethodPost, "/api/products/no-existe/generate-variants", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Product variants
// ──────────────────────────────────────────────────────────────────────────────

func TestProductVariants(t *testing.T) {
	app := buildTestApp(t)
	p := createWidget(t, app)

	status, raw := do(t, app, http.MethodGet, "/api/product-variants?product_id="+p.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[dto.SKUListResponse](t, raw).Items, 6)

	status, raw = do(t, app, http.MethodGet, "/api/product-variants/"+skuID(t, p, "WIDGET-Red-S"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "WIDGET-Red-S", decode[dto.SKUResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/api/product-variants", map[string]any{
		"product_id": p.ID,
		"options":    []map[string]string{{"dimension": "Color", "value": "Red"}, {"dimension": "Size", "value": "S"}},
	})
	assert.Equal(t, http.StatusConflict, status, string(raw))

	status, raw = do(t, app, http.MethodPost, "/api/product-variants", map[string]any{
		"product_id": p.ID,
		"options":    []map[string]string{{"dimension": "Color", "value": "Green"}, {"dimension": "Size", "value": "S"}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, "WIDGET-Green-S", decode[dto.SKUResponse](t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_AddRemove(t *testing.T) {
	app := buildTestApp(t)
	p := createWidget(t, app)
	id := skuID(t, p, "WIDGET-Red-S")

	status, raw := do(t, app, http.MethodPost, "/api/stock/add", map[string]any{"product_variant": id, "quantity": "50", "notes": "compra"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	mov := decode[dto.StockMovementResponse](t, raw)
	assert.Equal(t, "IN", mov.Type)
	assert.Equal(t, "50", mov.CurrentStock.String())

	status, raw = do(t, app, http.MethodPost, "/api/stock/remove", map[string]any{"product_variant": id, "quantity": "60"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/api/stock/remove", map[string]any{"product_variant": id, "quantity": "50"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.True(t, decode[dto.StockMovementResponse](t, raw).CurrentStock.IsZero())

	status, raw = do(t, app, http.MethodPost, "/api/stock/add", map[string]any{"product_variant": id, "quantity": "0"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "quantity")

	status, raw = do(t, app, http.MethodPost, "/api/stock/add", map[string]any{"product_variant": id, "quantity": "0.123456789"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "quantity")

	status, _ = do(t, app, http.MethodPost, "/api/stock/add", map[string]any{"product_variant": "no-existe", "quantity": "1"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStock_ReportYExport(t *testing.T) {
	app := buildTestApp(t)
	p := createWidget(t, app)
	status, _ := do(t, app, http.MethodPost, "/api/stock/add", map[string]any{"product_variant": skuID(t, p, "WIDGET-Blue-L"), "quantity": "4"})
	require.Equal(t, http.StatusCreated, status)

	today := time.Now().Format("2006-01-02")
	status, raw := do(t, app, http.MethodGet, "/api/stock/report?start_date="+today+"&end_date="+today, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	report := decode[dto.StockReportDTO](t, raw)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "WIDGET-Blue-L", report.Items[0].SKU)

	status, _ = do(t, app, http.MethodGet, "/api/stock/report?start_date=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodGet, "/api/stock/report/export?format=xlsx", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	status, _ = do(t, app, http.MethodGet, "/api/stock/report/export?format=doc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStock_DashboardYReconcile(t *testing.T) {
	app := buildTestApp(t)
	p := createWidget(t, app)
	status, _ := do(t, app, http.MethodPost, "/api/stock/add", map[string]any{"product_variant": skuID(t, p, "WIDGET-Red-M"), "quantity": "12"})
	require.Equal(t, http.StatusCreated, status)

	status, raw := do(t, app, http.MethodGet, "/api/stock/dashboard-stats", nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[dto.DashboardStatsDTO](t, raw)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.StockStatus.InStock)
	assert.Equal(t, 5, stats.StockStatus.OutOfStock)
	assert.Equal(t, "120", stats.InventoryValue.String())
	assert.Len(t, stats.RecentTransactions, 1)

	status, raw = do(t, app, http.MethodPost, "/api/stock/reconcile?fix=true", nil)
	require.Equal(t, http.StatusOK, status)
	res := decode[dto.ReconcileResponse](t, raw)
	assert.Equal(t, 1, res.Checked)
	assert.Empty(t, res.Drifted)
	assert.True(t, res.Fixed)
}
