package importer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agroinv/inventario-api/internal/domain"
	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
	"github.com/agroinv/inventario-api/internal/normalize"
	"github.com/agroinv/inventario-api/pkg/checksum"
	"github.com/agroinv/inventario-api/pkg/logger"
)

// UseCase orquesta una importación: lee archivos, normaliza y valida filas,
// reconcilia contra los productos existentes y escribe en bloque con fallback
// fila a fila. Estados: AwaitingFiles → Validating → (BaseReplace) →
// RowProcessing → Persisted | Rejected.
type UseCase struct {
	batches   repository.BatchRepository
	products  repository.ProductRepository
	records   repository.RecordRepository
	tx        TxRunner
	reader    SheetReader
	norm      *normalize.Normalizer
	log       *logger.Logger
	chunkSize int

	// Exclusión mutua por inventario: dos importaciones simultáneas al mismo
	// namespace se serializan (la secuencia borrar-y-recrear no es atómica).
	locks sync.Map // inventoryName → *sync.Mutex
}

// NewUseCase construye el importador.
func NewUseCase(
	batches repository.BatchRepository,
	products repository.ProductRepository,
	records repository.RecordRepository,
	tx TxRunner,
	reader SheetReader,
	norm *normalize.Normalizer,
	log *logger.Logger,
	chunkSize int,
) *UseCase {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &UseCase{
		batches:   batches,
		products:  products,
		records:   records,
		tx:        tx,
		reader:    reader,
		norm:      norm,
		log:       log,
		chunkSize: chunkSize,
	}
}

// Namespace normaliza el nombre de inventario: recortado, en minúsculas,
// "default" si viene vacío.
func Namespace(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "default"
	}
	return s
}

func (uc *UseCase) lockNamespace(inventoryName string) func() {
	v, _ := uc.locks.LoadOrStore(inventoryName, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// UploadInput entrada de la operación de carga combinada (base y/o actualizaciones).
type UploadInput struct {
	InventoryName string
	BaseFile      *File
	UpdateFiles   []File
}

// UploadResult conteos de una importación exitosa.
type UploadResult struct {
	InventoryName string
	BatchID       string
	BaseRecords   int
	UpdateRecords int
}

// TotalProcessed total de filas convertidas en productos o registros.
func (r *UploadResult) TotalProcessed() int {
	return r.BaseRecords + r.UpdateRecords
}

// Upload ejecuta la máquina de estados de importación sobre el namespace:
// la primera carga exige archivo base; las siguientes solo actualizaciones.
// Re-subir contenido byte-idéntico reemplaza el lote anterior.
func (uc *UseCase) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	inventoryName := Namespace(in.InventoryName)
	unlock := uc.lockNamespace(inventoryName)
	defer unlock()

	hasBase, err := uc.products.ExistsByNamespace(ctx, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("verificar base existente: %w", err)
	}

	// Validating: combinaciones admitidas de archivos según el estado del
	// inventario, evaluadas en este orden.
	switch {
	case hasBase && in.BaseFile != nil:
		return nil, domain.ErrBaseAlreadyLoaded
	case !hasBase && in.BaseFile == nil:
		return nil, domain.ErrBaseRequired
	case len(in.UpdateFiles) > 0 && !hasBase:
		return nil, domain.ErrUpdateBeforeBase
	case in.BaseFile == nil && len(in.UpdateFiles) == 0:
		return nil, domain.ErrNoFiles
	}

	var baseRows []BaseRow
	if in.BaseFile != nil {
		if baseRows, err = uc.reader.ReadBase(*in.BaseFile); err != nil {
			uc.log.Error().Err(err).Str("file", in.BaseFile.Name).Msg("leer archivo base")
			return nil, domain.ErrInvalidWorkbook
		}
	}
	updateSets := make([][]UpdateRow, 0, len(in.UpdateFiles))
	for _, f := range in.UpdateFiles {
		rows, err := uc.reader.ReadUpdate(f)
		if err != nil {
			uc.log.Error().Err(err).Str("file", f.Name).Msg("leer archivo de actualización")
			return nil, domain.ErrInvalidWorkbook
		}
		updateSets = append(updateSets, rows)
	}

	var contents [][]byte
	var names []string
	if in.BaseFile != nil {
		contents = append(contents, in.BaseFile.Content)
		names = append(names, in.BaseFile.Name)
	}
	for _, f := range in.UpdateFiles {
		contents = append(contents, f.Content)
		names = append(names, f.Name)
	}
	sum := checksum.NoFiles
	fileName := checksum.NoFiles
	if len(contents) > 0 {
		sum = checksum.Sum(contents...)
		fileName = strings.Join(names, " + ")
	}

	// Mismo checksum en el mismo inventario: rehacer la importación.
	deleted, err := uc.batches.DeleteByChecksum(ctx, sum, inventoryName)
	if err != nil {
		return nil, fmt.Errorf("eliminar lote previo con igual checksum: %w", err)
	}
	if deleted {
		uc.log.Info().Str("checksum", sum).Str("inventory", inventoryName).
			Msg("lote previo con el mismo checksum eliminado para re-importar")
	}

	batch := &entity.ImportBatch{
		ID:            uuid.NewString(),
		FileName:      fileName,
		InventoryName: inventoryName,
		StartedAt:     time.Now(),
		Checksum:      sum,
	}
	if err := uc.batches.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("crear lote: %w", err)
	}

	// BaseReplace: un archivo base reinicia el inventario (registros primero,
	// luego productos: la relación registro→producto es protegida).
	baseCount := 0
	if in.BaseFile != nil {
		if err := uc.records.DeleteByNamespace(ctx, inventoryName); err != nil {
			return nil, fmt.Errorf("eliminar registros previos: %w", err)
		}
		if err := uc.products.DeleteByNamespace(ctx, inventoryName); err != nil {
			return nil, fmt.Errorf("eliminar productos previos: %w", err)
		}
		baseCount = uc.processBase(ctx, uc.products, inventoryName, baseRows)
	}

	updateCount := 0
	for _, rows := range updateSets {
		updateCount += uc.processUpdate(ctx, uc.products, uc.records, inventoryName, batch.ID, rows)
	}

	if baseCount+updateCount == 0 {
		return nil, domain.ErrNoValidRows
	}

	if err := uc.batches.Finish(ctx, batch.ID, len(baseRows), baseCount+updateCount, time.Now()); err != nil {
		return nil, fmt.Errorf("cerrar lote: %w", err)
	}

	uc.log.Info().Str("batch", batch.ID).Str("inventory", inventoryName).
		Int("base", baseCount).Int("updates", updateCount).Msg("importación exitosa")

	return &UploadResult{
		InventoryName: inventoryName,
		BatchID:       batch.ID,
		BaseRecords:   baseCount,
		UpdateRecords: updateCount,
	}, nil
}

// UploadBase reinicia el inventario con un nuevo archivo base. Borrar lo
// anterior, crear el lote e importar corren dentro de una sola transacción.
func (uc *UseCase) UploadBase(ctx context.Context, rawInventoryName string, base File) (*UploadResult, error) {
	inventoryName := Namespace(rawInventoryName)
	unlock := uc.lockNamespace(inventoryName)
	defer unlock()

	baseRows, err := uc.reader.ReadBase(base)
	if err != nil {
		uc.log.Error().Err(err).Str("file", base.Name).Msg("leer archivo base")
		return nil, domain.ErrInvalidWorkbook
	}

	var result *UploadResult
	err = uc.tx.Run(ctx, func(
		batches repository.BatchRepository,
		products repository.ProductRepository,
		records repository.RecordRepository,
	) error {
		if err := records.DeleteByNamespace(ctx, inventoryName); err != nil {
			return fmt.Errorf("eliminar registros previos: %w", err)
		}
		if err := products.DeleteByNamespace(ctx, inventoryName); err != nil {
			return fmt.Errorf("eliminar productos previos: %w", err)
		}
		if err := batches.DeleteByNamespace(ctx, inventoryName); err != nil {
			return fmt.Errorf("eliminar lotes previos: %w", err)
		}

		batch := &entity.ImportBatch{
			ID:            uuid.NewString(),
			FileName:      base.Name,
			InventoryName: inventoryName,
			StartedAt:     time.Now(),
			Checksum:      checksum.Sum(base.Content),
		}
		if err := batches.Create(ctx, batch); err != nil {
			return fmt.Errorf("crear lote: %w", err)
		}

		count := uc.processBase(ctx, products, inventoryName, baseRows)
		if count == 0 {
			// Rollback: el lote recién creado desaparece con la transacción.
			return domain.ErrNoValidRows
		}

		if err := batches.Finish(ctx, batch.ID, len(baseRows), count, time.Now()); err != nil {
			return fmt.Errorf("cerrar lote: %w", err)
		}
		result = &UploadResult{
			InventoryName: inventoryName,
			BatchID:       batch.ID,
			BaseRecords:   count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("batch", result.BatchID).Str("inventory", inventoryName).
		Int("products", result.BaseRecords).Msg("archivo base importado")
	return result, nil
}

// flushProducts inserta el bloque en masa ignorando conflictos; si el camino
// masivo falla, reintenta fila a fila descartando las que fallen.
func (uc *UseCase) flushProducts(ctx context.Context, repo repository.ProductRepository, pending []*entity.Product) {
	if len(pending) == 0 {
		return
	}
	if err := repo.BulkInsert(ctx, pending); err != nil {
		uc.log.Error().Err(err).Int("rows", len(pending)).Msg("inserción masiva de productos, reintentando fila a fila")
		for _, p := range pending {
			if err := repo.Insert(ctx, p); err != nil {
				uc.log.Warn().Err(err).Str("code", p.Code).Msg("producto descartado")
			}
		}
	}
}

func (uc *UseCase) flushRecords(ctx context.Context, repo repository.RecordRepository, pending []*entity.InventoryRecord) {
	if len(pending) == 0 {
		return
	}
	if err := repo.BulkInsert(ctx, pending); err != nil {
		uc.log.Error().Err(err).Int("rows", len(pending)).Msg("inserción masiva de registros, reintentando fila a fila")
		for _, r := range pending {
			if err := repo.Insert(ctx, r); err != nil {
				uc.log.Warn().Err(err).Msg("registro descartado")
			}
		}
	}
}
