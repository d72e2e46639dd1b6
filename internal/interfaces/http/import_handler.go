package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/agroinv/inventario-api/internal/application/dto"
	"github.com/agroinv/inventario-api/internal/application/importer"
	"github.com/agroinv/inventario-api/internal/domain"
)

// ImportHandler maneja las cargas de archivos base y de actualización.
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// clientErrors sentinelas que son culpa del request, no del servidor.
var clientErrors = []error{
	domain.ErrBaseAlreadyLoaded,
	domain.ErrBaseRequired,
	domain.ErrUpdateBeforeBase,
	domain.ErrNoFiles,
	domain.ErrNoValidRows,
	domain.ErrInvalidWorkbook,
	domain.ErrInvalidInput,
}

func importStatus(err error) int {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

func readUpload(fh *multipart.FileHeader) (importer.File, error) {
	f, err := fh.Open()
	if err != nil {
		return importer.File{}, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return importer.File{}, fmt.Errorf("leer %s: %w", fh.Filename, err)
	}
	return importer.File{Name: fh.Filename, Content: content}, nil
}

// Upload godoc
// @Summary      Cargar archivo base y/o archivos de actualización
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        inventory_name  path      string  false  "Nombre del inventario (default si se omite)"
// @Param        base_file       formData  file    false  "Snapshot inicial (solo primera carga)"
// @Param        update_files    formData  file    false  "Archivos de movimientos (kardex)"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/upload/{inventory_name} [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	in := importer.UploadInput{InventoryName: c.Params("inventory_name")}

	if fh, err := c.FormFile("base_file"); err == nil && fh != nil {
		file, err := readUpload(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Err(err.Error()))
		}
		in.BaseFile = &file
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["update_files"] {
			file, err := readUpload(fh)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Err(err.Error()))
			}
			in.UpdateFiles = append(in.UpdateFiles, file)
		}
	}

	result, err := h.uc.Upload(c.Context(), in)
	if err != nil {
		return c.Status(importStatus(err)).JSON(dto.Err(err.Error()))
	}
	return c.JSON(dto.UploadResponse{
		OK:            true,
		InventoryName: result.InventoryName,
		BatchID:       result.BatchID,
		Summary: dto.UploadSummary{
			BaseRecords:    result.BaseRecords,
			UpdateRecords:  result.UpdateRecords,
			TotalProcessed: result.TotalProcessed(),
		},
	})
}

// UploadBase godoc
// @Summary      Reiniciar el inventario con un nuevo archivo base
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        inventory_name  path      string  false  "Nombre del inventario (default si se omite)"
// @Param        base_file       formData  file    true   "Snapshot inicial"
// @Success      200  {object}  dto.UploadBaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/upload-base/{inventory_name} [post]
func (h *ImportHandler) UploadBase(c *fiber.Ctx) error {
	fh, err := c.FormFile("base_file")
	if err != nil || fh == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("El archivo base es requerido"))
	}
	file, err := readUpload(fh)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err(err.Error()))
	}

	result, err := h.uc.UploadBase(c.Context(), c.Params("inventory_name"), file)
	if err != nil {
		return c.Status(importStatus(err)).JSON(dto.Err(err.Error()))
	}
	return c.JSON(dto.UploadBaseResponse{
		OK:      true,
		Message: fmt.Sprintf("Se importaron %d productos correctamente", result.BaseRecords),
		BatchID: result.BatchID,
	})
}

// CreateInventory stub: la aplicación trabaja sobre el inventario por defecto.
func (h *ImportHandler) CreateInventory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "La creación de inventario no está totalmente implementada; se utiliza la configuración predeterminada.",
	})
}
