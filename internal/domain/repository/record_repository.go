package repository

import (
	"context"
	"time"

	"github.com/agroinv/inventario-api/internal/domain/entity"
)

// RecordFilter filtros opcionales del listado de registros.
type RecordFilter struct {
	Warehouse string // substring, case-insensitive
	Category  string // substring, case-insensitive
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int // tope de filas (0 = default del repo)
}

// RecordWithProduct registro con los datos del producto ya resueltos (para listados).
type RecordWithProduct struct {
	entity.InventoryRecord
	ProductCode        string
	ProductDescription string
}

// RecordRepository define el puerto de persistencia para InventoryRecord.
type RecordRepository interface {
	Insert(ctx context.Context, rec *entity.InventoryRecord) error
	BulkInsert(ctx context.Context, recs []*entity.InventoryRecord) error
	// List devuelve los registros del inventario, más recientes primero.
	List(ctx context.Context, inventoryName string, filter RecordFilter) ([]*RecordWithProduct, error)
	// HistoryByProductCode devuelve el histórico cronológico completo de un producto.
	HistoryByProductCode(ctx context.Context, inventoryName, productCode string) ([]*entity.InventoryRecord, error)
	CountByNamespace(ctx context.Context, inventoryName string) (int, error)
	DeleteByNamespace(ctx context.Context, inventoryName string) error
}
