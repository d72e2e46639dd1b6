package domain

import "errors"

// Errores de dominio (sin dependencias externas). El handler HTTP los mapea
// a códigos de estado; el importador nunca deja escapar un error sin clasificar.
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrNotImplemented = errors.New("operación no implementada")

	// Flujo de importación: rechazos de la máquina de estados del importador.
	ErrBaseAlreadyLoaded = errors.New("el archivo base ya ha sido cargado. Solo puede cargar archivos de actualización")
	ErrBaseRequired      = errors.New("debe cargar primero el archivo base para inicializar el inventario")
	ErrUpdateBeforeBase  = errors.New("debe cargar el archivo base antes de cargar archivos de actualización")
	ErrNoFiles           = errors.New("debe proporcionar un archivo (base para inicialización o actualización)")
	ErrNoValidRows       = errors.New("no se importaron registros válidos")
	ErrInvalidWorkbook   = errors.New("error al procesar los archivos. Asegúrese de que sean archivos Excel válidos")
)
