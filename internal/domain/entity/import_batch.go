package entity

import "time"

// ImportBatch representa un evento de ingestión de archivos.
// (Checksum, InventoryName) es único: re-subir contenido byte-idéntico para el
// mismo inventario elimina el batch anterior y crea uno nuevo (rehacer, no duplicar).
type ImportBatch struct {
	ID            string
	FileName      string // nombres de archivo concatenados con " + "
	InventoryName string
	StartedAt     time.Time
	ProcessedAt   *time.Time // nil hasta completar la importación
	RowsTotal     int
	RowsImported  int
	Checksum      string // SHA-256 hex del contenido subido
}
