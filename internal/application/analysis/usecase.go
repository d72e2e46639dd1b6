package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/agroinv/inventario-api/internal/application/dto"
	"github.com/agroinv/inventario-api/internal/domain/repository"
)

// UseCase motor de stock y rotación: vista derivada de solo lectura,
// recalculada en cada request sobre el conjunto inmutable de registros.
type UseCase struct {
	repo repository.AnalysisRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso. now permite fijar el reloj en tests.
func NewUseCase(repo repository.AnalysisRepository, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{repo: repo, now: now}
}

// ProductAnalysis devuelve la vista de stock y rotación por producto para el
// año calendario en curso, opcionalmente filtrada por categoría.
func (uc *UseCase) ProductAnalysis(ctx context.Context, inventoryName, categoryFilter string) ([]dto.ProductAnalysisDTO, error) {
	year := uc.now().Year()

	products, err := uc.repo.ProductStock(ctx, inventoryName, categoryFilter)
	if err != nil {
		return nil, fmt.Errorf("stock por producto: %w", err)
	}
	preYear, err := uc.repo.PreYearBalances(ctx, inventoryName, year)
	if err != nil {
		return nil, fmt.Errorf("saldos previos al año: %w", err)
	}
	monthly, err := uc.repo.MonthlyMovements(ctx, inventoryName, year)
	if err != nil {
		return nil, fmt.Errorf("movimientos mensuales: %w", err)
	}

	out := make([]dto.ProductAnalysisDTO, 0, len(products))
	for _, p := range products {
		balancePreYear := p.InitialBalance.Add(preYear[p.ProductID])
		balances := MonthEndBalances(balancePreYear, monthly[p.ProductID])
		rot := ClassifyRotation(balances)

		out = append(out, dto.ProductAnalysisDTO{
			Codigo:              p.Code,
			NombreProducto:      p.Description,
			Grupo:               p.Group,
			CantidadSaldoActual: p.CurrentStock.InexactFloat64(),
			ValorSaldoActual:    p.CurrentStock.Mul(p.AvgCost).InexactFloat64(),
			CostoUnitario:       p.AvgCost.InexactFloat64(),
			Estancado:           siNo(rot.StagnantAllYear),
			Rotacion:            rot.Rotation,
			AltaRotacion:        siNo(rot.HighRotation),
		})
	}
	return out, nil
}

// Summary devuelve los agregados del inventario: conteos, desgloses por
// categoría y almacén, valoración total y totales de entradas/salidas.
func (uc *UseCase) Summary(ctx context.Context, inventoryName string) (*dto.SummaryDTO, error) {
	totalProducts, totalRecords, err := uc.repo.Counts(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("conteos del inventario: %w", err)
	}
	categories, err := uc.repo.CategoryStats(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("estadísticas por categoría: %w", err)
	}
	warehouses, err := uc.repo.WarehouseStats(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("estadísticas por almacén: %w", err)
	}
	valuation, err := uc.repo.TotalValuation(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("valoración total: %w", err)
	}
	movements, err := uc.repo.MovementTotals(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("totales de movimientos: %w", err)
	}

	summary := &dto.SummaryDTO{
		TotalProductos:        totalProducts,
		TotalRegistros:        totalRecords,
		ValorTotalInventario:  valuation.InexactFloat64(),
		EstadisticasCategoria: make([]dto.CategoryStatDTO, 0, len(categories)),
		EstadisticasAlmacen:   make([]dto.WarehouseStatDTO, 0, len(warehouses)),
		EstadisticasMovimientos: dto.MovementStatsDTO{
			Entradas: movements.Entries.InexactFloat64(),
			Salidas:  movements.Exits.Abs().InexactFloat64(),
		},
	}
	for _, c := range categories {
		summary.EstadisticasCategoria = append(summary.EstadisticasCategoria,
			dto.CategoryStatDTO{Group: c.Group, Count: c.Count})
	}
	for _, w := range warehouses {
		summary.EstadisticasAlmacen = append(summary.EstadisticasAlmacen,
			dto.WarehouseStatDTO{Warehouse: w.Warehouse, Count: w.Count})
	}
	return summary, nil
}

func siNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
