package repository

import (
	"context"

	"github.com/agroinv/inventario-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// BulkInsert ignora conflictos en silencio (ON CONFLICT DO NOTHING); el
// importador aplica el fallback fila a fila cuando el camino masivo falla.
type ProductRepository interface {
	Insert(ctx context.Context, product *entity.Product) error
	BulkInsert(ctx context.Context, products []*entity.Product) error
	ExistsByNamespace(ctx context.Context, inventoryName string) (bool, error)
	CodesByNamespace(ctx context.Context, inventoryName string) (map[string]struct{}, error)
	// MapByCodes devuelve los productos existentes indexados por código.
	MapByCodes(ctx context.Context, inventoryName string, codes []string) (map[string]*entity.Product, error)
	ListByNamespace(ctx context.Context, inventoryName string) ([]*entity.Product, error)
	CountByNamespace(ctx context.Context, inventoryName string) (int, error)
	// DeleteByNamespace asume que los registros del inventario ya fueron eliminados
	// (la relación registro→producto es protegida).
	DeleteByNamespace(ctx context.Context, inventoryName string) error
}
