package entity

import "github.com/shopspring/decimal"

// Product es una referencia de inventario (SKU) dentro de un inventario lógico.
// (Code, InventoryName) es único: el mismo código puede existir en inventarios distintos.
// Nunca se crea con descripción en blanco. Los productos "incorporados" (referenciados
// por un archivo de actualización sin existir en el base) nacen con saldo y costo cero.
type Product struct {
	ID              string
	Code            string
	Description     string
	Group           string // categoría mapeada (ver Normalizer.MapCategory)
	InventoryName   string
	InitialBalance  decimal.Decimal
	InitialUnitCost decimal.Decimal
}
