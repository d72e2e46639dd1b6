package repository

import (
	"context"
	"time"

	"github.com/agroinv/inventario-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para ImportBatch.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.ImportBatch) error
	// Finish registra los conteos de filas y la marca de procesado al completar la importación.
	Finish(ctx context.Context, id string, rowsTotal, rowsImported int, processedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteByChecksum elimina (con cascada a registros) el batch previo con el mismo
	// (checksum, inventario). Devuelve true si existía.
	DeleteByChecksum(ctx context.Context, checksum, inventoryName string) (bool, error)
	DeleteByNamespace(ctx context.Context, inventoryName string) error
	ListByNamespace(ctx context.Context, inventoryName string) ([]*entity.ImportBatch, error)
	LastByNamespace(ctx context.Context, inventoryName string) (*entity.ImportBatch, error)
}
