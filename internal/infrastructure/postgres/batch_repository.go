package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agroinv/inventario-api/internal/domain"
	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un nuevo lote de importación.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.ImportBatch) error {
	query := `
		INSERT INTO import_batches (id, file_name, inventory_name, started_at, processed_at, rows_total, rows_imported, checksum)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.FileName, batch.InventoryName, batch.StartedAt,
		batch.ProcessedAt, batch.RowsTotal, batch.RowsImported, batch.Checksum,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// Finish registra los conteos y la marca de procesado al completar la importación.
func (r *BatchRepo) Finish(ctx context.Context, id string, rowsTotal, rowsImported int, processedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE import_batches SET rows_total = $2, rows_imported = $3, processed_at = $4 WHERE id = $1`,
		id, rowsTotal, rowsImported, processedAt,
	)
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote por ID (los registros asociados caen en cascada).
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM import_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// DeleteByChecksum elimina el lote previo con el mismo (checksum, inventario).
// Devuelve true si existía.
func (r *BatchRepo) DeleteByChecksum(ctx context.Context, checksum, inventoryName string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM import_batches WHERE checksum = $1 AND inventory_name = $2`,
		checksum, inventoryName,
	)
	if err != nil {
		return false, fmt.Errorf("delete batch by checksum: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteByNamespace elimina todos los lotes de un inventario.
func (r *BatchRepo) DeleteByNamespace(ctx context.Context, inventoryName string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM import_batches WHERE inventory_name = $1`, inventoryName)
	if err != nil {
		return fmt.Errorf("delete batches by inventory: %w", err)
	}
	return nil
}

// ListByNamespace lista los lotes del inventario, más recientes primero.
func (r *BatchRepo) ListByNamespace(ctx context.Context, inventoryName string) ([]*entity.ImportBatch, error) {
	query := `
		SELECT id, file_name, inventory_name, started_at, processed_at, rows_total, rows_imported, checksum
		FROM import_batches WHERE inventory_name = $1 ORDER BY started_at DESC`
	rows, err := r.q.Query(ctx, query, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.ImportBatch
	for rows.Next() {
		var b entity.ImportBatch
		if err := rows.Scan(&b.ID, &b.FileName, &b.InventoryName, &b.StartedAt,
			&b.ProcessedAt, &b.RowsTotal, &b.RowsImported, &b.Checksum); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// LastByNamespace devuelve el lote más reciente del inventario, o nil si no hay.
func (r *BatchRepo) LastByNamespace(ctx context.Context, inventoryName string) (*entity.ImportBatch, error) {
	query := `
		SELECT id, file_name, inventory_name, started_at, processed_at, rows_total, rows_imported, checksum
		FROM import_batches WHERE inventory_name = $1 ORDER BY started_at DESC LIMIT 1`
	var b entity.ImportBatch
	err := r.q.QueryRow(ctx, query, inventoryName).Scan(
		&b.ID, &b.FileName, &b.InventoryName, &b.StartedAt,
		&b.ProcessedAt, &b.RowsTotal, &b.RowsImported, &b.Checksum,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last batch: %w", err)
	}
	return &b, nil
}
