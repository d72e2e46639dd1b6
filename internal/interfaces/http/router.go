package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agroinv/inventario-api/internal/application/analysis"
	"github.com/agroinv/inventario-api/internal/application/importer"
	"github.com/agroinv/inventario-api/internal/application/query"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ImportUC   *importer.UseCase
	QueryUC    *query.UseCase
	AnalysisUC *analysis.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	importHandler := NewImportHandler(deps.ImportUC)
	api.Post("/upload", importHandler.Upload)
	api.Post("/upload/:inventory_name", importHandler.Upload)
	api.Post("/update", importHandler.Upload)
	api.Post("/update/:inventory_name", importHandler.Upload)
	api.Post("/upload-base", importHandler.UploadBase)
	api.Post("/upload-base/:inventory_name", importHandler.UploadBase)
	api.Post("/create", importHandler.CreateInventory)

	queryHandler := NewQueryHandler(deps.QueryUC, deps.AnalysisUC)
	api.Get("/batches", queryHandler.Batches)
	api.Get("/products", queryHandler.Products)
	api.Get("/records", queryHandler.Records)
	api.Get("/analysis", queryHandler.Analysis)
	api.Get("/summary", queryHandler.Summary)
	api.Get("/inventories", queryHandler.Inventories)
	api.Get("/product/:product_code/history", queryHandler.ProductHistory)
	api.Get("/product/:inventory_name/:product_code/history", queryHandler.ProductHistory)

	exportHandler := NewExportHandler()
	api.Get("/export/excel", exportHandler.ExportExcel)
	api.Get("/export/excel/:inventory_name", exportHandler.ExportExcel)
	api.Get("/export/pdf", exportHandler.ExportPDF)
	api.Get("/export/pdf/:inventory_name", exportHandler.ExportPDF)
}
