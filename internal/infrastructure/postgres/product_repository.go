package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/agroinv/inventario-api/internal/domain"
	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, description, grupo, inventory_name, initial_balance, initial_unit_cost`

// Insert persiste un producto.
func (r *ProductRepo) Insert(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Description, p.Group, p.InventoryName,
		p.InitialBalance, p.InitialUnitCost,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// BulkInsert inserta productos en un solo statement, ignorando los códigos
// ya existentes (ON CONFLICT DO NOTHING).
func (r *ProductRepo) BulkInsert(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO products (` + productColumns + `) VALUES `)
	args := make([]any, 0, len(products)*7)
	for i, p := range products {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, p.ID, p.Code, p.Description, p.Group, p.InventoryName,
			p.InitialBalance, p.InitialUnitCost)
	}
	sb.WriteString(` ON CONFLICT (code, inventory_name) DO NOTHING`)

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("bulk insert products: %w", err)
	}
	return nil
}

// ExistsByNamespace indica si el inventario ya tiene al menos un producto.
func (r *ProductRepo) ExistsByNamespace(ctx context.Context, inventoryName string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE inventory_name = $1)`,
		inventoryName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("products exist: %w", err)
	}
	return exists, nil
}

// CodesByNamespace devuelve el conjunto de códigos de producto del inventario.
func (r *ProductRepo) CodesByNamespace(ctx context.Context, inventoryName string) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx,
		`SELECT code FROM products WHERE inventory_name = $1`, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("product codes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan product code: %w", err)
		}
		out[code] = struct{}{}
	}
	return out, rows.Err()
}

// MapByCodes devuelve los productos existentes indexados por código.
func (r *ProductRepo) MapByCodes(ctx context.Context, inventoryName string, codes []string) (map[string]*entity.Product, error) {
	if len(codes) == 0 {
		return map[string]*entity.Product{}, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE inventory_name = $1 AND code = ANY($2)`
	rows, err := r.q.Query(ctx, query, inventoryName, codes)
	if err != nil {
		return nil, fmt.Errorf("products by codes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.Product, len(codes))
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Group, &p.InventoryName,
			&p.InitialBalance, &p.InitialUnitCost); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.Code] = &p
	}
	return out, rows.Err()
}

// ListByNamespace lista los productos del inventario ordenados por código.
func (r *ProductRepo) ListByNamespace(ctx context.Context, inventoryName string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE inventory_name = $1 ORDER BY code`
	rows, err := r.q.Query(ctx, query, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Group, &p.InventoryName,
			&p.InitialBalance, &p.InitialUnitCost); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByNamespace cuenta los productos del inventario.
func (r *ProductRepo) CountByNamespace(ctx context.Context, inventoryName string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE inventory_name = $1`, inventoryName,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DeleteByNamespace elimina los productos del inventario. Asume que los
// registros asociados ya fueron eliminados.
func (r *ProductRepo) DeleteByNamespace(ctx context.Context, inventoryName string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE inventory_name = $1`, inventoryName)
	if err != nil {
		return fmt.Errorf("delete products by inventory: %w", err)
	}
	return nil
}
