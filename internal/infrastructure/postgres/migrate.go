package postgres

import (
	"context"
	"fmt"
)

// Migrate crea el esquema si no existe. Los registros dependen del batch con
// borrado en cascada y del producto con borrado restringido: eliminar un
// producto con movimientos es un error, primero se eliminan sus registros.
func Migrate(ctx context.Context, q Querier) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS import_batches (
			id UUID PRIMARY KEY,
			file_name TEXT NOT NULL,
			inventory_name TEXT NOT NULL DEFAULT 'default',
			started_at TIMESTAMPTZ NOT NULL,
			processed_at TIMESTAMPTZ,
			rows_total INT NOT NULL DEFAULT 0,
			rows_imported INT NOT NULL DEFAULT 0,
			checksum TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_import_batches_checksum
			ON import_batches (checksum, inventory_name)`,

		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL,
			description TEXT NOT NULL,
			grupo TEXT NOT NULL DEFAULT '',
			inventory_name TEXT NOT NULL DEFAULT 'default',
			initial_balance NUMERIC(18,4) NOT NULL DEFAULT 0,
			initial_unit_cost NUMERIC(18,4) NOT NULL DEFAULT 0,
			CONSTRAINT products_code_inventory_uq UNIQUE (code, inventory_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_inventory ON products (inventory_name)`,

		`CREATE TABLE IF NOT EXISTS inventory_records (
			id BIGSERIAL PRIMARY KEY,
			batch_id UUID NOT NULL REFERENCES import_batches(id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
			warehouse TEXT NOT NULL DEFAULT '',
			date DATE NOT NULL,
			document_type TEXT,
			document_number TEXT,
			quantity NUMERIC(18,4) NOT NULL DEFAULT 0,
			unit_cost NUMERIC(18,4) NOT NULL DEFAULT 0,
			total NUMERIC(18,4) NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			lot TEXT NOT NULL DEFAULT '',
			final_quantity NUMERIC(18,4),
			cost_center TEXT,
			CONSTRAINT records_document_uq UNIQUE (document_type, document_number, product_id, batch_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_product_date ON inventory_records (product_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_records_date ON inventory_records (date)`,
		`CREATE INDEX IF NOT EXISTS idx_records_batch ON inventory_records (batch_id)`,
	}

	for _, stmt := range statements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
	}
	return nil
}
