package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo variantes concretas y sus asignaciones sobre PostgreSQL.
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

// Create inserta el SKU y sus opciones. Debe llamarse dentro de una tx para que sea atómico.
func (r *SKURepo) Create(ctx context.Context, sku *entity.SKU) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO skus (id, product_id, code, created_at) VALUES ($1, $2, $3, $4) RETURNING seq`,
		sku.ID, sku.ProductID, sku.Code, sku.CreatedAt,
	).Scan(&sku.Seq)
	if err != nil {
		return translateInsertErr("insert sku", err)
	}
	for _, o := range sku.Options {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sku_options (sku_id, dimension_id, option_id) VALUES ($1, $2, $3)`,
			sku.ID, o.DimensionID, o.OptionID,
		)
		if err != nil {
			return translateInsertErr("insert sku option", err)
		}
	}
	return nil
}

const skuColumns = `s.id, s.product_id, s.code, s.seq, s.created_at`

func scanSKU(row pgx.Row) (*entity.SKU, error) {
	var s entity.SKU
	if err := row.Scan(&s.ID, &s.ProductID, &s.Code, &s.Seq, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SKURepo) getOne(ctx context.Context, query, what string, arg any) (*entity.SKU, error) {
	s, err := scanSKU(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if err := r.loadOptions(ctx, []*entity.SKU{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID obtiene un SKU con sus opciones.
func (r *SKURepo) GetByID(ctx context.Context, id string) (*entity.SKU, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+skuColumns+` FROM skus s WHERE s.id = $1`, "get sku", id)
}

// GetByIDForUpdate bloquea la fila del SKU (SELECT FOR UPDATE).
func (r *SKURepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SKU, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+skuColumns+` FROM skus s WHERE s.id = $1 FOR UPDATE`, "get sku for update", id)
}

// GetByCode obtiene un SKU por código.
func (r *SKURepo) GetByCode(ctx context.Context, code string) (*entity.SKU, error) {
	return r.getOne(ctx, `SELECT `+skuColumns+` FROM skus s WHERE s.code = $1`, "get sku by code", code)
}

// ListByProduct SKUs del producto en orden de creación.
func (r *SKURepo) ListByProduct(ctx context.Context, productID string) ([]*entity.SKU, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+skuColumns+` FROM skus s WHERE s.product_id = $1 ORDER BY s.seq`, productID)
}

// List SKUs paginados en orden de creación.
func (r *SKURepo) List(ctx context.Context, limit, offset int) ([]*entity.SKU, error) {
	return r.list(ctx, `SELECT `+skuColumns+` FROM skus s ORDER BY s.seq LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *SKURepo) list(ctx context.Context, query string, args ...any) ([]*entity.SKU, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	var list []*entity.SKU
	for rows.Next() {
		s, err := scanSKU(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	if err := r.loadOptions(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadOptions completa las opciones (con nombres) de varios SKUs en una sola consulta.
func (r *SKURepo) loadOptions(ctx context.Context, skus []*entity.SKU) error {
	if len(skus) == 0 {
		return nil
	}
	ids := make([]string, 0, len(skus))
	byID := make(map[string]*entity.SKU, len(skus))
	for _, s := range skus {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT so.sku_id, so.dimension_id, so.option_id, d.name, o.value
		FROM sku_options so
		JOIN variant_dimensions d ON d.id = so.dimension_id
		JOIN variant_options o ON o.id = so.option_id
		WHERE so.sku_id = ANY($1::uuid[])
		ORDER BY d.position`, ids)
	if err != nil {
		return fmt.Errorf("list sku options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o entity.SKUOption
		if err := rows.Scan(&o.SKUID, &o.DimensionID, &o.OptionID, &o.DimensionName, &o.OptionValue); err != nil {
			return fmt.Errorf("scan sku option: %w", err)
		}
		if s, ok := byID[o.SKUID]; ok {
			s.Options = append(s.Options, o)
		}
	}
	return rows.Err()
}
