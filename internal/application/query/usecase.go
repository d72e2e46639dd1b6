// Package query agrupa las lecturas simples del inventario: lotes, productos,
// registros, histórico por producto e inventarios disponibles.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/agroinv/inventario-api/internal/application/dto"
	"github.com/agroinv/inventario-api/internal/domain/repository"
)

// Tope de filas del listado de registros.
const recordListLimit = 1000

// UseCase lecturas de solo consulta sobre el almacén persistido.
type UseCase struct {
	batches  repository.BatchRepository
	products repository.ProductRepository
	records  repository.RecordRepository
}

// NewUseCase construye el caso de uso de consultas.
func NewUseCase(
	batches repository.BatchRepository,
	products repository.ProductRepository,
	records repository.RecordRepository,
) *UseCase {
	return &UseCase{batches: batches, products: products, records: records}
}

// ListBatches lista los lotes de importación del inventario, más recientes primero.
func (uc *UseCase) ListBatches(ctx context.Context, inventoryName string) ([]dto.BatchDTO, error) {
	batches, err := uc.batches.ListByNamespace(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	out := make([]dto.BatchDTO, 0, len(batches))
	for _, b := range batches {
		var processedAt *string
		if b.ProcessedAt != nil {
			s := b.ProcessedAt.Format(time.RFC3339)
			processedAt = &s
		}
		out = append(out, dto.BatchDTO{
			ID:            b.ID,
			FileName:      b.FileName,
			InventoryName: b.InventoryName,
			StartedAt:     b.StartedAt.Format(time.RFC3339),
			ProcessedAt:   processedAt,
			RowsImported:  b.RowsImported,
			RowsTotal:     b.RowsTotal,
			Checksum:      b.Checksum,
		})
	}
	return out, nil
}

// ListProducts lista los productos del inventario.
func (uc *UseCase) ListProducts(ctx context.Context, inventoryName string) ([]dto.ProductDTO, error) {
	products, err := uc.products.ListByNamespace(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductDTO{
			Code:            p.Code,
			Description:     p.Description,
			Group:           p.Group,
			InitialBalance:  p.InitialBalance.InexactFloat64(),
			InitialUnitCost: p.InitialUnitCost.InexactFloat64(),
		})
	}
	return out, nil
}

// ListRecords lista registros de movimiento con filtros opcionales, más
// recientes primero, limitado a 1000 filas.
func (uc *UseCase) ListRecords(ctx context.Context, inventoryName string, filter repository.RecordFilter) ([]dto.RecordDTO, error) {
	filter.Limit = recordListLimit
	records, err := uc.records.List(ctx, inventoryName, filter)
	if err != nil {
		return nil, fmt.Errorf("listar registros: %w", err)
	}
	out := make([]dto.RecordDTO, 0, len(records))
	for _, r := range records {
		quantity := r.Quantity.InexactFloat64()
		d := dto.RecordDTO{
			ID:                 r.ID,
			ProductCode:        r.ProductCode,
			ProductDescription: r.ProductDescription,
			Warehouse:          r.Warehouse,
			Date:               r.Date.Format("2006-01-02"),
			DocumentType:       r.DocumentType,
			DocumentNumber:     r.DocumentNumber,
			Quantity:           quantity,
			UnitCost:           r.UnitCost.InexactFloat64(),
			Total:              r.Total.InexactFloat64(),
			Category:           r.Category,
			BatchID:            r.BatchID,

			Item:         r.ProductCode,
			DescItem:     r.ProductDescription,
			Localizacion: r.Warehouse,
			Categoria:    r.Category,
			Documento:    deref(r.DocumentType) + deref(r.DocumentNumber),
			Unitario:     r.UnitCost.InexactFloat64(),
		}
		if quantity > 0 {
			d.Entradas = quantity
		} else {
			d.Salidas = -quantity
		}
		out = append(out, d)
	}
	return out, nil
}

// ProductHistory devuelve el histórico cronológico completo de un producto.
func (uc *UseCase) ProductHistory(ctx context.Context, inventoryName, productCode string) ([]dto.HistoryEntryDTO, error) {
	records, err := uc.records.HistoryByProductCode(ctx, inventoryName, productCode)
	if err != nil {
		return nil, fmt.Errorf("histórico del producto %s: %w", productCode, err)
	}
	out := make([]dto.HistoryEntryDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.HistoryEntryDTO{
			Date:           r.Date.Format("2006-01-02"),
			DocumentType:   r.DocumentType,
			DocumentNumber: r.DocumentNumber,
			Quantity:       r.Quantity.InexactFloat64(),
			UnitCost:       r.UnitCost.InexactFloat64(),
			Total:          r.Total.InexactFloat64(),
			Warehouse:      r.Warehouse,
			Category:       r.Category,
		})
	}
	return out, nil
}

// ListInventories lista los metadatos del inventario `default`. El soporte
// multi-inventario existe en la partición de datos pero no en este listado.
func (uc *UseCase) ListInventories(ctx context.Context) ([]dto.InventoryInfoDTO, error) {
	const name = "default"

	last, err := uc.batches.LastByNamespace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("último lote: %w", err)
	}
	if last == nil {
		return []dto.InventoryInfoDTO{}, nil
	}

	productCount, err := uc.products.CountByNamespace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("conteo de productos: %w", err)
	}
	recordCount, err := uc.records.CountByNamespace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("conteo de registros: %w", err)
	}

	lastUpdated := last.StartedAt
	if last.ProcessedAt != nil {
		lastUpdated = *last.ProcessedAt
	}
	return []dto.InventoryInfoDTO{{
		Name:         name,
		ProductCount: productCount,
		RecordCount:  recordCount,
		LastUpdated:  lastUpdated.Format(time.RFC3339),
	}}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
