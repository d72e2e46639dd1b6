package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductStockRow producto con su stock actual y último costo ya resueltos.
// CurrentStock sigue la regla de desempate de salidas agrupadas: para salidas
// con el mismo (tipo, número de documento, fecha) se toma la cantidad final
// mínima reportada; si no hay salidas, la cantidad final del último registro;
// si no hay registros, el saldo inicial del producto.
type ProductStockRow struct {
	ProductID      string
	Code           string
	Description    string
	Group          string
	InitialBalance decimal.Decimal
	CurrentStock   decimal.Decimal
	AvgCost        decimal.Decimal // último costo unitario o costo inicial
}

// CategoryStat conteo de productos por categoría.
type CategoryStat struct {
	Group string
	Count int64
}

// WarehouseStat conteo de registros por almacén.
type WarehouseStat struct {
	Warehouse string
	Count     int64
}

// MovementTotals sumas de entradas (positivas) y salidas (negativas) del inventario.
type MovementTotals struct {
	Entries decimal.Decimal
	Exits   decimal.Decimal // negativo o cero
}

// AnalysisRepository consultas de solo lectura para el motor de stock y rotación
// y para el resumen del inventario. Se recalculan en cada request, sin caché.
type AnalysisRepository interface {
	// Counts devuelve el total de productos y de registros del inventario.
	Counts(ctx context.Context, inventoryName string) (products, records int, err error)
	ProductStock(ctx context.Context, inventoryName, categoryFilter string) ([]ProductStockRow, error)
	// PreYearBalances suma de cantidades con fecha estrictamente anterior al año, por producto.
	PreYearBalances(ctx context.Context, inventoryName string, year int) (map[string]decimal.Decimal, error)
	// MonthlyMovements suma de cantidades por producto y mes (1..12) del año indicado.
	MonthlyMovements(ctx context.Context, inventoryName string, year int) (map[string][12]decimal.Decimal, error)
	CategoryStats(ctx context.Context, inventoryName string) ([]CategoryStat, error)
	WarehouseStats(ctx context.Context, inventoryName string) ([]WarehouseStat, error)
	// TotalValuation valor total del inventario: saldo final (última cantidad final
	// reportada o saldo inicial) × último costo, solo productos con saldo positivo.
	TotalValuation(ctx context.Context, inventoryName string) (decimal.Decimal, error)
	MovementTotals(ctx context.Context, inventoryName string) (MovementTotals, error)
}
