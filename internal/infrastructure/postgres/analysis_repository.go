package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agroinv/inventario-api/internal/domain/repository"
)

var _ repository.AnalysisRepository = (*AnalysisRepo)(nil)

// AnalysisRepo consultas de solo lectura para el motor de stock y rotación.
type AnalysisRepo struct {
	q Querier
}

// NewAnalysisRepository construye el adaptador de consultas analíticas. Pasar pool o tx (Querier).
func NewAnalysisRepository(q Querier) *AnalysisRepo {
	return &AnalysisRepo{q: q}
}

// Counts devuelve el total de productos y de registros del inventario.
func (r *AnalysisRepo) Counts(ctx context.Context, inventoryName string) (int, int, error) {
	var products, records int
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products WHERE inventory_name = $1),
			(SELECT COUNT(*) FROM inventory_records r
			 JOIN products p ON p.id = r.product_id
			 WHERE p.inventory_name = $1)`, inventoryName,
	).Scan(&products, &records)
	if err != nil {
		return 0, 0, fmt.Errorf("inventory counts: %w", err)
	}
	return products, records, nil
}

// lastRecordJoin resuelve, por producto, el registro más reciente (fecha y,
// a igual fecha, mayor identificador).
const lastRecordJoin = `
	LEFT JOIN LATERAL (
		SELECT r.final_quantity, r.unit_cost
		FROM inventory_records r
		WHERE r.product_id = p.id
		ORDER BY r.date DESC, r.id DESC
		LIMIT 1
	) lr ON TRUE`

// productStockQuery resuelve el stock actual por producto: mínima cantidad
// final del grupo de salida más reciente con documento (mismo documento y
// fecha, desempate por tipo y número ascendentes), luego la cantidad final
// del último registro, luego el saldo inicial. Las salidas sin documento no
// forman grupo.
const productStockQuery = `
	SELECT p.id, p.code, p.description, p.grupo, p.initial_balance,
	       COALESCE(ge.min_final, lr.final_quantity, p.initial_balance) AS current_stock,
	       COALESCE(lr.unit_cost, p.initial_unit_cost) AS avg_cost
	FROM products p
	LEFT JOIN LATERAL (
		SELECT MIN(r2.final_quantity) AS min_final
		FROM inventory_records r2
		WHERE r2.product_id = p.id
		  AND r2.quantity < 0
		  AND r2.document_type IS NOT NULL
		  AND r2.document_number IS NOT NULL
		  AND (r2.document_type, r2.document_number, r2.date) = (
			SELECT r3.document_type, r3.document_number, r3.date
			FROM inventory_records r3
			WHERE r3.product_id = p.id
			  AND r3.quantity < 0
			  AND r3.document_type IS NOT NULL
			  AND r3.document_number IS NOT NULL
			ORDER BY r3.date DESC, r3.document_type, r3.document_number
			LIMIT 1
		  )
	) ge ON TRUE` + lastRecordJoin + `
	WHERE p.inventory_name = $1`

// ProductStock devuelve cada producto con su stock actual y último costo.
func (r *AnalysisRepo) ProductStock(ctx context.Context, inventoryName, categoryFilter string) ([]repository.ProductStockRow, error) {
	query := productStockQuery
	args := []any{inventoryName}
	if categoryFilter != "" {
		args = append(args, "%"+categoryFilter+"%")
		query += fmt.Sprintf(" AND p.grupo ILIKE $%d", len(args))
	}
	query += ` ORDER BY p.code`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("product stock: %w", err)
	}
	defer rows.Close()

	var list []repository.ProductStockRow
	for rows.Next() {
		var row repository.ProductStockRow
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Description, &row.Group,
			&row.InitialBalance, &row.CurrentStock, &row.AvgCost); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// PreYearBalances suma las cantidades con fecha anterior al año, por producto.
func (r *AnalysisRepo) PreYearBalances(ctx context.Context, inventoryName string, year int) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT r.product_id, COALESCE(SUM(r.quantity), 0)
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1 AND r.date < make_date($2, 1, 1)
		GROUP BY r.product_id`, inventoryName, year)
	if err != nil {
		return nil, fmt.Errorf("pre-year balances: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan pre-year balance: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

// MonthlyMovements suma las cantidades por producto y mes del año indicado.
func (r *AnalysisRepo) MonthlyMovements(ctx context.Context, inventoryName string, year int) (map[string][12]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT r.product_id, EXTRACT(MONTH FROM r.date)::int, COALESCE(SUM(r.quantity), 0)
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1 AND EXTRACT(YEAR FROM r.date) = $2
		GROUP BY r.product_id, EXTRACT(MONTH FROM r.date)`, inventoryName, year)
	if err != nil {
		return nil, fmt.Errorf("monthly movements: %w", err)
	}
	defer rows.Close()

	out := make(map[string][12]decimal.Decimal)
	for rows.Next() {
		var id string
		var month int
		var sum decimal.Decimal
		if err := rows.Scan(&id, &month, &sum); err != nil {
			return nil, fmt.Errorf("scan monthly movement: %w", err)
		}
		if month < 1 || month > 12 {
			continue
		}
		months := out[id]
		months[month-1] = sum
		out[id] = months
	}
	return out, rows.Err()
}

// CategoryStats cuenta productos por categoría, mayores primero.
func (r *AnalysisRepo) CategoryStats(ctx context.Context, inventoryName string) ([]repository.CategoryStat, error) {
	rows, err := r.q.Query(ctx, `
		SELECT grupo, COUNT(*)
		FROM products WHERE inventory_name = $1
		GROUP BY grupo ORDER BY COUNT(*) DESC, grupo`, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	var list []repository.CategoryStat
	for rows.Next() {
		var s repository.CategoryStat
		if err := rows.Scan(&s.Group, &s.Count); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// WarehouseStats cuenta registros por almacén, mayores primero.
func (r *AnalysisRepo) WarehouseStats(ctx context.Context, inventoryName string) ([]repository.WarehouseStat, error) {
	rows, err := r.q.Query(ctx, `
		SELECT r.warehouse, COUNT(*)
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1
		GROUP BY r.warehouse ORDER BY COUNT(*) DESC, r.warehouse`, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("warehouse stats: %w", err)
	}
	defer rows.Close()

	var list []repository.WarehouseStat
	for rows.Next() {
		var s repository.WarehouseStat
		if err := rows.Scan(&s.Warehouse, &s.Count); err != nil {
			return nil, fmt.Errorf("scan warehouse stat: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// totalValuationQuery suma saldo final por último costo. Entra todo producto
// con última cantidad final positiva o saldo inicial positivo, aunque su
// saldo final sea negativo (resta del total).
const totalValuationQuery = `
	SELECT COALESCE(SUM(s.stock * s.cost), 0)
	FROM (
		SELECT COALESCE(lr.final_quantity, p.initial_balance) AS stock,
		       COALESCE(lr.unit_cost, p.initial_unit_cost) AS cost,
		       lr.final_quantity AS last_final,
		       p.initial_balance
		FROM products p` + lastRecordJoin + `
		WHERE p.inventory_name = $1
	) s
	WHERE s.last_final > 0 OR s.initial_balance > 0`

// TotalValuation valor total del inventario: saldo final por producto (última
// cantidad final reportada o saldo inicial) por su último costo.
func (r *AnalysisRepo) TotalValuation(ctx context.Context, inventoryName string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, totalValuationQuery, inventoryName).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total valuation: %w", err)
	}
	return total, nil
}

// MovementTotals suma entradas (positivas) y salidas (negativas) del inventario.
func (r *AnalysisRepo) MovementTotals(ctx context.Context, inventoryName string) (repository.MovementTotals, error) {
	var totals repository.MovementTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN r.quantity > 0 THEN r.quantity ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN r.quantity < 0 THEN r.quantity ELSE 0 END), 0)
		FROM inventory_records r
		JOIN products p ON p.id = r.product_id
		WHERE p.inventory_name = $1`, inventoryName,
	).Scan(&totals.Entries, &totals.Exits)
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("movement totals: %w", err)
	}
	return totals, nil
}
