package postgres

import (
	"context"
	"fmt"
)

// schema sentencias idempotentes del esquema de inventario. Las llaves foráneas con
// ON DELETE CASCADE hacen que borrar un producto elimine dimensiones, opciones, SKUs,
// asignaciones y movimientos en la misma sentencia.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		seq_id BIGSERIAL UNIQUE,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		favourite BOOLEAN NOT NULL DEFAULT FALSE,
		tax_code TEXT NOT NULL DEFAULT '',
		total_stock NUMERIC(20,8) NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC);`,

	`CREATE TABLE IF NOT EXISTS variant_dimensions (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		position BIGSERIAL,
		UNIQUE(product_id, name)
	);`,

	`CREATE TABLE IF NOT EXISTS variant_options (
		id UUID PRIMARY KEY,
		dimension_id UUID NOT NULL REFERENCES variant_dimensions(id) ON DELETE CASCADE,
		value TEXT NOT NULL,
		position BIGSERIAL,
		UNIQUE(dimension_id, value)
	);`,

	`CREATE TABLE IF NOT EXISTS skus (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		code TEXT NOT NULL UNIQUE,
		seq BIGSERIAL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_skus_product_id ON skus(product_id);`,

	`CREATE TABLE IF NOT EXISTS sku_options (
		sku_id UUID NOT NULL REFERENCES skus(id) ON DELETE CASCADE,
		dimension_id UUID NOT NULL REFERENCES variant_dimensions(id) ON DELETE CASCADE,
		option_id UUID NOT NULL REFERENCES variant_options(id) ON DELETE CASCADE,
		PRIMARY KEY (sku_id, dimension_id)
	);`,

	`CREATE TABLE IF NOT EXISTS stock_movements (
		id UUID PRIMARY KEY,
		seq BIGSERIAL,
		sku_id UUID NOT NULL REFERENCES skus(id) ON DELETE CASCADE,
		transaction_type VARCHAR(3) NOT NULL CHECK (transaction_type IN ('IN', 'OUT')),
		quantity NUMERIC(20,8) NOT NULL CHECK (quantity > 0),
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_sku_id ON stock_movements(sku_id);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_created_at ON stock_movements(created_at DESC, seq DESC);`,
}

// Migrate aplica el esquema. Es seguro ejecutarlo en cada arranque.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
