package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo dimensiones y opciones de variante sobre PostgreSQL.
// La unicidad (producto, nombre) y (dimensión, valor) la garantizan constraints UNIQUE.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// CreateDimension inserta la dimensión; position sale de la secuencia (orden de declaración).
func (r *VariantRepo) CreateDimension(ctx context.Context, dim *entity.VariantDimension) error {
	if dim.ID == "" {
		dim.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO variant_dimensions (id, product_id, name) VALUES ($1, $2, $3) RETURNING position`,
		dim.ID, dim.ProductID, dim.Name,
	).Scan(&dim.Position)
	if err != nil {
		return translateInsertErr("insert variant dimension", err)
	}
	return nil
}

// FindOrCreateDimension inserta con ON CONFLICT DO NOTHING y, si ya existía, la lee.
func (r *VariantRepo) FindOrCreateDimension(ctx context.Context, productID, name string) (*entity.VariantDimension, bool, error) {
	d := entity.VariantDimension{ID: uuid.New().String(), ProductID: productID, Name: name}
	err := r.q.QueryRow(ctx, `
		INSERT INTO variant_dimensions (id, product_id, name) VALUES ($1, $2, $3)
		ON CONFLICT (product_id, name) DO NOTHING
		RETURNING position`,
		d.ID, productID, name,
	).Scan(&d.Position)
	if err == nil {
		return &d, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, translateInsertErr("find or create variant dimension", err)
	}
	err = r.q.QueryRow(ctx,
		`SELECT id, product_id, name, position FROM variant_dimensions WHERE product_id = $1 AND name = $2`,
		productID, name,
	).Scan(&d.ID, &d.ProductID, &d.Name, &d.Position)
	if err != nil {
		return nil, false, fmt.Errorf("get variant dimension: %w", err)
	}
	return &d, false, nil
}

// CreateOption inserta la opción; position sale de la secuencia.
func (r *VariantRepo) CreateOption(ctx context.Context, opt *entity.VariantOption) error {
	if opt.ID == "" {
		opt.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO variant_options (id, dimension_id, value) VALUES ($1, $2, $3) RETURNING position`,
		opt.ID, opt.DimensionID, opt.Value,
	).Scan(&opt.Position)
	if err != nil {
		return translateInsertErr("insert variant option", err)
	}
	return nil
}

// FindOrCreateOption igual que FindOrCreateDimension para opciones.
func (r *VariantRepo) FindOrCreateOption(ctx context.Context, dimensionID, value string) (*entity.VariantOption, error) {
	o := entity.VariantOption{ID: uuid.New().String(), DimensionID: dimensionID, Value: value}
	err := r.q.QueryRow(ctx, `
		INSERT INTO variant_options (id, dimension_id, value) VALUES ($1, $2, $3)
		ON CONFLICT (dimension_id, value) DO NOTHING
		RETURNING position`,
		o.ID, dimensionID, value,
	).Scan(&o.Position)
	if err == nil {
		return &o, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, translateInsertErr("find or create variant option", err)
	}
	err = r.q.QueryRow(ctx,
		`SELECT id, dimension_id, value, position FROM variant_options WHERE dimension_id = $1 AND value = $2`,
		dimensionID, value,
	).Scan(&o.ID, &o.DimensionID, &o.Value, &o.Position)
	if err != nil {
		return nil, fmt.Errorf("get variant option: %w", err)
	}
	return &o, nil
}

// ListByProduct dimensiones y opciones del producto en orden de declaración (una sola consulta).
func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.VariantDimension, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.product_id, d.name, d.position, o.id, o.value, o.position
		FROM variant_dimensions d
		LEFT JOIN variant_options o ON o.dimension_id = d.id
		WHERE d.product_id = $1
		ORDER BY d.position, o.position`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variant dimensions: %w", err)
	}
	defer rows.Close()

	var list []*entity.VariantDimension
	byID := map[string]*entity.VariantDimension{}
	for rows.Next() {
		var (
			d      entity.VariantDimension
			optID  *string
			optVal *string
			optPos *int64
		)
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Name, &d.Position, &optID, &optVal, &optPos); err != nil {
			return nil, fmt.Errorf("scan variant dimension: %w", err)
		}
		dim, ok := byID[d.ID]
		if !ok {
			dim = &d
			byID[d.ID] = dim
			list = append(list, dim)
		}
		if optID != nil {
			dim.Options = append(dim.Options, &entity.VariantOption{
				ID: *optID, DimensionID: dim.ID, Value: *optVal, Position: *optPos,
			})
		}
	}
	return list, rows.Err()
}

// translateInsertErr 23505 → ErrDuplicate, 23503 (padre inexistente) y 22P02 (id mal formado) → ErrNotFound.
func translateInsertErr(what string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err), isInvalidTextRepresentation(err):
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}
