package dto

// ProductDTO producto en el listado de productos.
type ProductDTO struct {
	Code            string  `json:"code"`
	Description     string  `json:"description"`
	Group           string  `json:"group"`
	InitialBalance  float64 `json:"initial_balance"`
	InitialUnitCost float64 `json:"initial_unit_cost"`
}

// RecordDTO registro de movimiento en el listado de registros. Incluye los
// alias de compatibilidad del frontend (item, desc_item, localizacion, …).
type RecordDTO struct {
	ID                 int64   `json:"id"`
	ProductCode        string  `json:"product_code"`
	ProductDescription string  `json:"product_description"`
	Warehouse          string  `json:"warehouse"`
	Date               string  `json:"date"`
	DocumentType       *string `json:"document_type"`
	DocumentNumber     *string `json:"document_number"`
	Quantity           float64 `json:"quantity"`
	UnitCost           float64 `json:"unit_cost"`
	Total              float64 `json:"total"`
	Category           string  `json:"category"`
	BatchID            string  `json:"batch_id"`

	// Alias de compatibilidad con el frontend.
	Item         string  `json:"item"`
	DescItem     string  `json:"desc_item"`
	Localizacion string  `json:"localizacion"`
	Categoria    string  `json:"categoria"`
	Documento    string  `json:"documento"`
	Entradas     float64 `json:"entradas"`
	Salidas      float64 `json:"salidas"`
	Unitario     float64 `json:"unitario"`
}

// HistoryEntryDTO una línea del histórico cronológico de un producto.
type HistoryEntryDTO struct {
	Date           string  `json:"date"`
	DocumentType   *string `json:"document_type"`
	DocumentNumber *string `json:"document_number"`
	Quantity       float64 `json:"quantity"`
	UnitCost       float64 `json:"unit_cost"`
	Total          float64 `json:"total"`
	Warehouse      string  `json:"warehouse"`
	Category       string  `json:"category"`
}

// ProductAnalysisDTO vista de stock y rotación por producto.
type ProductAnalysisDTO struct {
	Codigo              string  `json:"codigo"`
	NombreProducto      string  `json:"nombre_producto"`
	Grupo               string  `json:"grupo"`
	CantidadSaldoActual float64 `json:"cantidad_saldo_actual"`
	ValorSaldoActual    float64 `json:"valor_saldo_actual"`
	CostoUnitario       float64 `json:"costo_unitario"`
	Estancado           string  `json:"estancado"`
	Rotacion            string  `json:"rotacion"`
	AltaRotacion        string  `json:"alta_rotacion"`
	Almacen             string  `json:"almacen"` // siempre vacío, compatibilidad con el frontend
}

// SummaryDTO resumen agregado del inventario.
type SummaryDTO struct {
	TotalProductos          int                `json:"total_productos"`
	TotalRegistros          int                `json:"total_registros"`
	ValorTotalInventario    float64            `json:"valor_total_inventario"`
	EstadisticasCategoria   []CategoryStatDTO  `json:"estadisticas_categoria"`
	EstadisticasAlmacen     []WarehouseStatDTO `json:"estadisticas_almacen"`
	EstadisticasMovimientos MovementStatsDTO   `json:"estadisticas_movimientos"`
}

// CategoryStatDTO conteo de productos por categoría.
type CategoryStatDTO struct {
	Group string `json:"group"`
	Count int64  `json:"count"`
}

// WarehouseStatDTO conteo de registros por almacén.
type WarehouseStatDTO struct {
	Warehouse string `json:"warehouse"`
	Count     int64  `json:"count"`
}

// MovementStatsDTO totales de entradas y salidas (salidas en valor absoluto).
type MovementStatsDTO struct {
	Entradas float64 `json:"entradas"`
	Salidas  float64 `json:"salidas"`
}

// InventoryInfoDTO metadatos de un inventario en el listado de inventarios.
type InventoryInfoDTO struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
	RecordCount  int    `json:"record_count"`
	LastUpdated  string `json:"last_updated"`
}
