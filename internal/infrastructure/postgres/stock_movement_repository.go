package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (sólo INSERT, nunca UPDATE/DELETE directos).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta la entrada; seq lo asigna la secuencia.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (id, sku_id, transaction_type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`,
		m.ID, m.SKUID, m.Type, m.Quantity, m.Notes, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return translateInsertErr("insert stock movement", err)
	}
	return nil
}

// SumBySKU Σ IN y Σ OUT del SKU (0 si no hay entradas).
func (r *StockMovementRepo) SumBySKU(ctx context.Context, skuID string) (in, out decimal.Decimal, err error) {
	if !isUUID(skuID) {
		return decimal.Zero, decimal.Zero, nil
	}
	err = r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE transaction_type = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE transaction_type = 'OUT'), 0)
		FROM stock_movements WHERE sku_id = $1`, skuID,
	).Scan(&in, &out)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum stock movements: %w", err)
	}
	return in, out, nil
}

// SumByProduct Σ IN − Σ OUT de todos los SKUs del producto.
func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	if !isUUID(productID) {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN m.transaction_type = 'IN' THEN m.quantity ELSE -m.quantity END), 0)
		FROM stock_movements m
		JOIN skus s ON s.id = m.sku_id
		WHERE s.product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum product stock: %w", err)
	}
	return total, nil
}

const movementRowSelect = `
	SELECT m.id, m.seq, m.sku_id, m.transaction_type, m.quantity, m.notes, m.created_at,
	       s.code, s.product_id, p.name
	FROM stock_movements m
	JOIN skus s ON s.id = m.sku_id
	JOIN products p ON p.id = s.product_id`

func (r *StockMovementRepo) listRows(ctx context.Context, query string, args ...any) ([]*repository.MovementRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementRow
	for rows.Next() {
		var mr repository.MovementRow
		if err := rows.Scan(&mr.ID, &mr.Seq, &mr.SKUID, &mr.Type, &mr.Quantity, &mr.Notes, &mr.CreatedAt,
			&mr.SKUCode, &mr.ProductID, &mr.ProductName); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &mr)
	}
	return list, rows.Err()
}

// ListByDateRange from <= created_at < to, más recientes primero.
func (r *StockMovementRepo) ListByDateRange(ctx context.Context, from, to *time.Time) ([]*repository.MovementRow, error) {
	var (
		where []string
		args  []any
	)
	if from != nil {
		args = append(args, *from)
		where = append(where, fmt.Sprintf("m.created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		where = append(where, fmt.Sprintf("m.created_at < $%d", len(args)))
	}
	query := movementRowSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY m.created_at DESC, m.seq DESC"
	return r.listRows(ctx, query, args...)
}

// ListRecent los limit movimientos más recientes.
func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*repository.MovementRow, error) {
	return r.listRows(ctx, movementRowSelect+` ORDER BY m.created_at DESC, m.seq DESC LIMIT $1`, limit)
}

// Balances totales por SKU con LEFT JOIN: los SKUs sin movimientos salen en cero.
func (r *StockMovementRepo) Balances(ctx context.Context, productID string) ([]repository.SKUBalance, error) {
	if productID != "" && !isUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT s.id, s.code, s.product_id,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.transaction_type = 'IN'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.transaction_type = 'OUT'), 0)
		FROM skus s
		LEFT JOIN stock_movements m ON m.sku_id = s.id
		WHERE ($1 = '' OR s.product_id::text = $1)
		GROUP BY s.id, s.code, s.product_id, s.seq
		ORDER BY s.seq`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("sku balances: %w", err)
	}
	defer rows.Close()
	var list []repository.SKUBalance
	for rows.Next() {
		var b repository.SKUBalance
		if err := rows.Scan(&b.SKUID, &b.SKUCode, &b.ProductID, &b.TotalIn, &b.TotalOut); err != nil {
			return nil, fmt.Errorf("scan sku balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ProductBalances contador cacheado frente al total del libro para cada producto.
func (r *StockMovementRepo) ProductBalances(ctx context.Context) ([]repository.ProductBalance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.code, p.total_stock,
			COALESCE(SUM(CASE WHEN m.transaction_type = 'IN' THEN m.quantity ELSE -m.quantity END), 0)
		FROM products p
		LEFT JOIN skus s ON s.product_id = p.id
		LEFT JOIN stock_movements m ON m.sku_id = s.id
		GROUP BY p.id, p.code, p.total_stock
		ORDER BY p.code`)
	if err != nil {
		return nil, fmt.Errorf("product balances: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductBalance
	for rows.Next() {
		var b repository.ProductBalance
		if err := rows.Scan(&b.ProductID, &b.ProductCode, &b.Cached, &b.Ledger); err != nil {
			return nil, fmt.Errorf("scan product balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
