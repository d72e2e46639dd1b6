package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/agroinv/inventario-api/internal/domain"
	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo implementación del puerto RecordRepository sobre PostgreSQL (usable con pool o tx).
type RecordRepo struct {
	q Querier
}

// NewRecordRepository construye el adaptador de persistencia para registros. Pasar pool o tx (Querier).
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

const recordInsertColumns = `batch_id, product_id, warehouse, date, document_type, document_number,
	quantity, unit_cost, total, category, lot, final_quantity, cost_center`

// Insert persiste un registro de movimiento y deja el ID generado en la entidad.
func (r *RecordRepo) Insert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + recordInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		rec.BatchID, rec.ProductID, rec.Warehouse, rec.Date,
		rec.DocumentType, rec.DocumentNumber, rec.Quantity, rec.UnitCost,
		rec.Total, rec.Category, rec.Lot, rec.FinalQuantity, rec.CostCenter,
	).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// BulkInsert inserta registros en un solo statement, ignorando duplicados de
// (documento, producto, lote de importación).
func (r *RecordRepo) BulkInsert(ctx context.Context, recs []*entity.InventoryRecord) error {
	if len(recs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO inventory_records (` + recordInsertColumns + `) VALUES `)
	args := make([]any, 0, len(recs)*13)
	for i, rec := range recs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 13
		sb.WriteString("(")
		for j := 1; j <= 13; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")
		args = append(args,
			rec.BatchID, rec.ProductID, rec.Warehouse, rec.Date,
			rec.DocumentType, rec.DocumentNumber, rec.Quantity, rec.UnitCost,
			rec.Total, rec.Category, rec.Lot, rec.FinalQuantity, rec.CostCenter,
		)
	}
	sb.WriteString(` ON CONFLICT ON CONSTRAINT records_document_uq DO NOTHING`)

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("bulk insert records: %w", err)
	}
	return nil
}

// List devuelve los registros del inventario con datos del producto resueltos,
// más recientes primero. Filtros por almacén y categoría son por substring,
// sin distinguir mayúsculas.
func (r *RecordRepo) List(ctx context.Context, inventoryName string, filter repository.RecordFilter) ([]*repository.RecordWithProduct, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT r.id, r.batch_id, r.product_id, r.warehouse, r.date, r.document_type,
		       r.document_number, r.quantity, r.unit_cost, r.total, r.category, r.lot,
		       r.final_quantity, r.cost_center, p.code, p.description
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1`)
	args := []any{inventoryName}

	if filter.Warehouse != "" {
		args = append(args, "%"+filter.Warehouse+"%")
		fmt.Fprintf(&sb, " AND r.warehouse ILIKE $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, "%"+filter.Category+"%")
		fmt.Fprintf(&sb, " AND r.category ILIKE $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		fmt.Fprintf(&sb, " AND r.date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		fmt.Fprintf(&sb, " AND r.date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY r.date DESC, r.id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var list []*repository.RecordWithProduct
	for rows.Next() {
		var rec repository.RecordWithProduct
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.ProductID, &rec.Warehouse,
			&rec.Date, &rec.DocumentType, &rec.DocumentNumber, &rec.Quantity,
			&rec.UnitCost, &rec.Total, &rec.Category, &rec.Lot,
			&rec.FinalQuantity, &rec.CostCenter, &rec.ProductCode, &rec.ProductDescription); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// HistoryByProductCode devuelve el histórico cronológico completo de un producto.
func (r *RecordRepo) HistoryByProductCode(ctx context.Context, inventoryName, productCode string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT r.id, r.batch_id, r.product_id, r.warehouse, r.date, r.document_type,
		       r.document_number, r.quantity, r.unit_cost, r.total, r.category, r.lot,
		       r.final_quantity, r.cost_center
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1 AND p.code = $2
		ORDER BY r.date, r.id`
	rows, err := r.q.Query(ctx, query, inventoryName, productCode)
	if err != nil {
		return nil, fmt.Errorf("product history: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.ProductID, &rec.Warehouse,
			&rec.Date, &rec.DocumentType, &rec.DocumentNumber, &rec.Quantity,
			&rec.UnitCost, &rec.Total, &rec.Category, &rec.Lot,
			&rec.FinalQuantity, &rec.CostCenter); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// CountByNamespace cuenta los registros del inventario.
func (r *RecordRepo) CountByNamespace(ctx context.Context, inventoryName string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1`, inventoryName,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// DeleteByNamespace elimina los registros del inventario.
func (r *RecordRepo) DeleteByNamespace(ctx context.Context, inventoryName string) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM inventory_records r
		USING products p
		WHERE r.product_id = p.id AND p.inventory_name = $1`, inventoryName)
	if err != nil {
		return fmt.Errorf("delete records by inventory: %w", err)
	}
	return nil
}
