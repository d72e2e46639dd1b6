package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/agroinv/inventario-api/internal/application/dto"
)

// ExportHandler stubs de exportación. La generación de archivos vive en el
// frontend; estos endpoints existen por compatibilidad de contrato.
type ExportHandler struct{}

// NewExportHandler construye el handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

func (h *ExportHandler) notImplemented(c *fiber.Ctx, format string) error {
	return c.Status(fiber.StatusNotImplemented).
		JSON(dto.Err(fmt.Sprintf("Export to %s not implemented yet.", format)))
}

// ExportExcel responde 501: la exportación a Excel no está implementada.
func (h *ExportHandler) ExportExcel(c *fiber.Ctx) error {
	return h.notImplemented(c, "excel")
}

// ExportPDF responde 501: la exportación a PDF no está implementada.
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	return h.notImplemented(c, "pdf")
}
