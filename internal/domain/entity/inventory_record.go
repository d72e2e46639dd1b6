package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de movimiento (conjunto cerrado).
const (
	DocTypeEntry    = "EA" // entrada
	DocTypeExit     = "SA" // salida
	DocTypeAltEntry = "GF" // entrada alterna
)

// InventoryRecord es una línea de movimiento importada de un archivo de actualización.
// Inmutable tras la creación; se elimina solo en cascada por batch o por producto.
// (DocumentType, DocumentNumber, ProductID, BatchID) es único dentro de un batch.
type InventoryRecord struct {
	ID             int64 // BIGSERIAL: desempata registros del mismo día (mayor = más reciente)
	BatchID        string
	ProductID      string
	Warehouse      string
	Date           time.Time
	DocumentType   *string
	DocumentNumber *string
	Quantity       decimal.Decimal // positivo = entrada, negativo = salida
	UnitCost       decimal.Decimal
	Total          decimal.Decimal
	Category       string
	Lot            string
	FinalQuantity  *decimal.Decimal // saldo después del movimiento según el archivo fuente
	CostCenter     *string
}

// IsExit indica si el movimiento es una salida.
func (r *InventoryRecord) IsExit() bool {
	return r.Quantity.IsNegative()
}
