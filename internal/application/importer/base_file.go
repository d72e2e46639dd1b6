package importer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
	"github.com/agroinv/inventario-api/internal/normalize"
)

// baseKey identidad de producto dentro del archivo base.
type baseKey struct {
	code        string
	description string
	group       string
}

type baseGroup struct {
	quantity decimal.Decimal
	value    decimal.Decimal
	unitCost decimal.Decimal // el último visto manda
}

// processBase agrega las filas del snapshot inicial por (código, descripción,
// grupo) e inserta un producto por grupo. Los códigos que ya existen en el
// inventario se saltan. Devuelve cuántos productos se crearon.
func (uc *UseCase) processBase(ctx context.Context, repo repository.ProductRepository, inventoryName string, rows []BaseRow) int {
	existing, err := repo.CodesByNamespace(ctx, inventoryName)
	if err != nil {
		uc.log.Error().Err(err).Str("inventory", inventoryName).Msg("códigos existentes del inventario")
		return 0
	}

	groups := make(map[baseKey]*baseGroup)
	order := make([]baseKey, 0, len(rows))
	for _, row := range rows {
		code := strings.TrimLeft(strings.TrimSpace(row.Codigo), "0")
		description := strings.TrimSpace(row.Descripcion)
		if code == "" || description == "" {
			continue
		}

		key := baseKey{code: code, description: description, group: strings.TrimSpace(row.Grupo)}
		g, ok := groups[key]
		if !ok {
			g = &baseGroup{}
			groups[key] = g
			order = append(order, key)
		}
		g.quantity = g.quantity.Add(normalize.ParseDecimal(row.Cantidad))
		g.value = g.value.Add(normalize.ParseDecimal(row.ValorTotal))
		g.unitCost = normalize.ParseDecimal(row.CostoUnitario)
	}

	count := 0
	pending := make([]*entity.Product, 0, uc.chunkSize)
	for _, key := range order {
		if _, ok := existing[key.code]; ok {
			continue
		}
		existing[key.code] = struct{}{}

		g := groups[key]
		pending = append(pending, &entity.Product{
			ID:              uuid.NewString(),
			Code:            key.code,
			Description:     key.description,
			Group:           uc.norm.MapCategory(key.group),
			InventoryName:   inventoryName,
			InitialBalance:  g.quantity,
			InitialUnitCost: g.unitCost,
		})
		count++

		if len(pending) >= uc.chunkSize {
			uc.flushProducts(ctx, repo, pending)
			pending = pending[:0]
		}
	}
	uc.flushProducts(ctx, repo, pending)

	return count
}
