package dto

// UploadResponse respuesta de POST /upload (y /update).
type UploadResponse struct {
	OK            bool          `json:"ok"`
	InventoryName string        `json:"inventory_name"`
	BatchID       string        `json:"batch_id"`
	Summary       UploadSummary `json:"summary"`
}

// UploadSummary conteos de la importación.
type UploadSummary struct {
	BaseRecords    int `json:"base_records"`
	UpdateRecords  int `json:"update_records"`
	TotalProcessed int `json:"total_processed"`
}

// UploadBaseResponse respuesta de POST /upload-base.
type UploadBaseResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	BatchID string `json:"batch_id"`
}

// BatchDTO un lote de importación en el listado de batches.
type BatchDTO struct {
	ID            string  `json:"id"`
	FileName      string  `json:"file_name"`
	InventoryName string  `json:"inventory_name"`
	StartedAt     string  `json:"started_at"`
	ProcessedAt   *string `json:"processed_at"`
	RowsImported  int     `json:"rows_imported"`
	RowsTotal     int     `json:"rows_total"`
	Checksum      string  `json:"checksum"`
}
