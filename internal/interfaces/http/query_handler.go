package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agroinv/inventario-api/internal/application/analysis"
	"github.com/agroinv/inventario-api/internal/application/dto"
	"github.com/agroinv/inventario-api/internal/application/importer"
	"github.com/agroinv/inventario-api/internal/application/query"
	"github.com/agroinv/inventario-api/internal/domain/repository"
)

// QueryHandler maneja las lecturas: lotes, productos, registros, análisis,
// histórico, resumen e inventarios.
type QueryHandler struct {
	queries  *query.UseCase
	analysis *analysis.UseCase
}

// NewQueryHandler construye el handler.
func NewQueryHandler(queries *query.UseCase, analysisUC *analysis.UseCase) *QueryHandler {
	return &QueryHandler{queries: queries, analysis: analysisUC}
}

// inventoryFromQuery resuelve el inventario del query string (?inventory_name=).
func inventoryFromQuery(c *fiber.Ctx) string {
	return importer.Namespace(c.Query("inventory_name"))
}

// Batches godoc
// @Summary      Listar lotes de importación
// @Tags         query
// @Produce      json
// @Param        inventory_name  query  string  false  "Inventario (default si se omite)"
// @Success      200  {array}  dto.BatchDTO
// @Router       /api/batches [get]
func (h *QueryHandler) Batches(c *fiber.Ctx) error {
	batches, err := h.queries.ListBatches(c.Context(), inventoryFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(batches)
}

// Products godoc
// @Summary      Listar productos
// @Tags         query
// @Produce      json
// @Param        inventory_name  query  string  false  "Inventario (default si se omite)"
// @Success      200  {array}  dto.ProductDTO
// @Router       /api/products [get]
func (h *QueryHandler) Products(c *fiber.Ctx) error {
	products, err := h.queries.ListProducts(c.Context(), inventoryFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(products)
}

// Records godoc
// @Summary      Listar registros de movimiento
// @Tags         query
// @Produce      json
// @Param        inventory_name  query  string  false  "Inventario (default si se omite)"
// @Param        warehouse       query  string  false  "Filtro por almacén (substring)"
// @Param        category        query  string  false  "Filtro por categoría (substring)"
// @Param        date_from       query  string  false  "Fecha mínima (YYYY-MM-DD)"
// @Param        date_to         query  string  false  "Fecha máxima (YYYY-MM-DD)"
// @Success      200  {array}  dto.RecordDTO
// @Router       /api/records [get]
func (h *QueryHandler) Records(c *fiber.Ctx) error {
	filter := repository.RecordFilter{
		Warehouse: c.Query("warehouse"),
		Category:  c.Query("category"),
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &t
		}
	}

	records, err := h.queries.ListRecords(c.Context(), inventoryFromQuery(c), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(records)
}

// Analysis godoc
// @Summary      Análisis de stock y rotación por producto
// @Tags         analysis
// @Produce      json
// @Param        inventory_name  query  string  false  "Inventario (default si se omite)"
// @Param        category        query  string  false  "Filtro por categoría (substring)"
// @Success      200  {array}  dto.ProductAnalysisDTO
// @Router       /api/analysis [get]
func (h *QueryHandler) Analysis(c *fiber.Ctx) error {
	result, err := h.analysis.ProductAnalysis(c.Context(), inventoryFromQuery(c), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(result)
}

// ProductHistory godoc
// @Summary      Histórico cronológico de un producto
// @Tags         query
// @Produce      json
// @Param        inventory_name  path  string  false  "Inventario (default si se omite)"
// @Param        product_code    path  string  true   "Código de producto"
// @Success      200  {array}  dto.HistoryEntryDTO
// @Router       /api/product/{inventory_name}/{product_code}/history [get]
func (h *QueryHandler) ProductHistory(c *fiber.Ctx) error {
	inventoryName := importer.Namespace(c.Params("inventory_name"))
	history, err := h.queries.ProductHistory(c.Context(), inventoryName, c.Params("product_code"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(history)
}

// Summary godoc
// @Summary      Resumen agregado del inventario
// @Tags         analysis
// @Produce      json
// @Param        inventory_name  query  string  false  "Inventario (default si se omite)"
// @Success      200  {object}  dto.SummaryDTO
// @Router       /api/summary [get]
func (h *QueryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.analysis.Summary(c.Context(), inventoryFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(summary)
}

// Inventories godoc
// @Summary      Listar inventarios disponibles
// @Tags         query
// @Produce      json
// @Success      200  {array}  dto.InventoryInfoDTO
// @Router       /api/inventories [get]
func (h *QueryHandler) Inventories(c *fiber.Ctx) error {
	inventories, err := h.queries.ListInventories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err(err.Error()))
	}
	return c.JSON(inventories)
}
