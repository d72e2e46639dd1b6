package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroinv/inventario-api/internal/application/analysis"
	"github.com/agroinv/inventario-api/internal/application/importer"
	"github.com/agroinv/inventario-api/internal/application/query"
	"github.com/agroinv/inventario-api/internal/domain"
	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
	"github.com/agroinv/inventario-api/internal/infrastructure/excel"
	"github.com/agroinv/inventario-api/internal/normalize"
	"github.com/agroinv/inventario-api/pkg/logger"
)

// --- repos en memoria para levantar la app completa sin PostgreSQL ---

type store struct {
	batches  []*entity.ImportBatch
	products []*entity.Product
	records  []*entity.InventoryRecord
}

type stubBatches struct{ s *store }

func (r *stubBatches) Create(_ context.Context, b *entity.ImportBatch) error {
	r.s.batches = append(r.s.batches, b)
	return nil
}

func (r *stubBatches) Finish(_ context.Context, id string, rowsTotal, rowsImported int, at time.Time) error {
	for _, b := range r.s.batches {
		if b.ID == id {
			b.RowsTotal, b.RowsImported, b.ProcessedAt = rowsTotal, rowsImported, &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubBatches) Delete(_ context.Context, id string) error { return nil }

func (r *stubBatches) DeleteByChecksum(_ context.Context, checksum, inv string) (bool, error) {
	out := r.s.batches[:0]
	found := false
	for _, b := range r.s.batches {
		if b.Checksum == checksum && b.InventoryName == inv {
			found = true
			continue
		}
		out = append(out, b)
	}
	r.s.batches = out
	return found, nil
}

func (r *stubBatches) DeleteByNamespace(_ context.Context, inv string) error {
	out := r.s.batches[:0]
	for _, b := range r.s.batches {
		if b.InventoryName != inv {
			out = append(out, b)
		}
	}
	r.s.batches = out
	return nil
}

func (r *stubBatches) ListByNamespace(_ context.Context, inv string) ([]*entity.ImportBatch, error) {
	var out []*entity.ImportBatch
	for _, b := range r.s.batches {
		if b.InventoryName == inv {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBatches) LastByNamespace(_ context.Context, inv string) (*entity.ImportBatch, error) {
	var last *entity.ImportBatch
	for _, b := range r.s.batches {
		if b.InventoryName == inv {
			last = b
		}
	}
	return last, nil
}

type stubProducts struct{ s *store }

func (r *stubProducts) Insert(_ context.Context, p *entity.Product) error {
	r.s.products = append(r.s.products, p)
	return nil
}

func (r *stubProducts) BulkInsert(ctx context.Context, list []*entity.Product) error {
	for _, p := range list {
		if err := r.Insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubProducts) ExistsByNamespace(_ context.Context, inv string) (bool, error) {
	for _, p := range r.s.products {
		if p.InventoryName == inv {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProducts) CodesByNamespace(_ context.Context, inv string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for _, p := range r.s.products {
		if p.InventoryName == inv {
			out[p.Code] = struct{}{}
		}
	}
	return out, nil
}

func (r *stubProducts) MapByCodes(_ context.Context, inv string, codes []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, p := range r.s.products {
		if p.InventoryName != inv {
			continue
		}
		for _, c := range codes {
			if p.Code == c {
				out[c] = p
			}
		}
	}
	return out, nil
}

func (r *stubProducts) ListByNamespace(_ context.Context, inv string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.InventoryName == inv {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProducts) CountByNamespace(ctx context.Context, inv string) (int, error) {
	list, _ := r.ListByNamespace(ctx, inv)
	return len(list), nil
}

func (r *stubProducts) DeleteByNamespace(_ context.Context, inv string) error {
	out := r.s.products[:0]
	for _, p := range r.s.products {
		if p.InventoryName != inv {
			out = append(out, p)
		}
	}
	r.s.products = out
	return nil
}

type stubRecords struct{ s *store }

func (r *stubRecords) Insert(_ context.Context, rec *entity.InventoryRecord) error {
	rec.ID = int64(len(r.s.records) + 1)
	r.s.records = append(r.s.records, rec)
	return nil
}

func (r *stubRecords) BulkInsert(ctx context.Context, recs []*entity.InventoryRecord) error {
	for _, rec := range recs {
		if err := r.Insert(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubRecords) List(_ context.Context, inv string, _ repository.RecordFilter) ([]*repository.RecordWithProduct, error) {
	byID := map[string]*entity.Product{}
	for _, p := range r.s.products {
		if p.InventoryName == inv {
			byID[p.ID] = p
		}
	}
	var out []*repository.RecordWithProduct
	for _, rec := range r.s.records {
		if p, ok := byID[rec.ProductID]; ok {
			out = append(out, &repository.RecordWithProduct{
				InventoryRecord:    *rec,
				ProductCode:        p.Code,
				ProductDescription: p.Description,
			})
		}
	}
	return out, nil
}

func (r *stubRecords) HistoryByProductCode(_ context.Context, inv, code string) ([]*entity.InventoryRecord, error) {
	var productID string
	for _, p := range r.s.products {
		if p.InventoryName == inv && p.Code == code {
			productID = p.ID
		}
	}
	var out []*entity.InventoryRecord
	for _, rec := range r.s.records {
		if rec.ProductID == productID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubRecords) CountByNamespace(_ context.Context, _ string) (int, error) {
	return len(r.s.records), nil
}

func (r *stubRecords) DeleteByNamespace(_ context.Context, _ string) error {
	r.s.records = nil
	return nil
}

type stubAnalysis struct{ s *store }

func (r *stubAnalysis) Counts(_ context.Context, inv string) (int, int, error) {
	products := 0
	for _, p := range r.s.products {
		if p.InventoryName == inv {
			products++
		}
	}
	return products, len(r.s.records), nil
}

func (r *stubAnalysis) ProductStock(_ context.Context, inv, _ string) ([]repository.ProductStockRow, error) {
	var out []repository.ProductStockRow
	for _, p := range r.s.products {
		if p.InventoryName == inv {
			out = append(out, repository.ProductStockRow{
				ProductID:      p.ID,
				Code:           p.Code,
				Description:    p.Description,
				Group:          p.Group,
				InitialBalance: p.InitialBalance,
				CurrentStock:   p.InitialBalance,
				AvgCost:        p.InitialUnitCost,
			})
		}
	}
	return out, nil
}

func (r *stubAnalysis) PreYearBalances(_ context.Context, _ string, _ int) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}

func (r *stubAnalysis) MonthlyMovements(_ context.Context, _ string, _ int) (map[string][12]decimal.Decimal, error) {
	return map[string][12]decimal.Decimal{}, nil
}

func (r *stubAnalysis) CategoryStats(_ context.Context, _ string) ([]repository.CategoryStat, error) {
	return nil, nil
}

func (r *stubAnalysis) WarehouseStats(_ context.Context, _ string) ([]repository.WarehouseStat, error) {
	return nil, nil
}

func (r *stubAnalysis) TotalValuation(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubAnalysis) MovementTotals(_ context.Context, _ string) (repository.MovementTotals, error) {
	return repository.MovementTotals{}, nil
}

type stubTx struct {
	batches  repository.BatchRepository
	products repository.ProductRepository
	records  repository.RecordRepository
}

func (t *stubTx) Run(_ context.Context, fn func(
	repository.BatchRepository,
	repository.ProductRepository,
	repository.RecordRepository,
) error) error {
	return fn(t.batches, t.products, t.records)
}

func newTestApp() (*fiber.App, *store) {
	s := &store{}
	batches := &stubBatches{s: s}
	products := &stubProducts{s: s}
	records := &stubRecords{s: s}
	tx := &stubTx{batches: batches, products: products, records: records}
	log := logger.New(logger.Config{Env: "test", Level: "disabled"})

	importUC := importer.NewUseCase(batches, products, records, tx,
		excel.NewReader(), normalize.New(normalize.DefaultMaps()), log, 500)
	queryUC := query.NewUseCase(batches, products, records)
	analysisUC := analysis.NewUseCase(&stubAnalysis{s: s}, nil)

	app := fiber.New()
	Router(app, RouterDeps{ImportUC: importUC, QueryUC: queryUC, AnalysisUC: analysisUC})
	return app, s
}

func multipartBody(t *testing.T, field, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}

const baseCSV = "FECHA;MES;ALMACEN;GRUPO;CODIGO;DESCRIPCION;CANTIDAD;UNIDAD;COSTO;VALOR\n" +
	"20260131;ENERO;102-05;1;001;UREA;5;KIL;100;500\n" +
	"20260131;ENERO;102-05;1;001;UREA;10;KIL;100;1000\n" +
	"20260131;ENERO;102-05;4;002;CABUYA;3;ROL;50;150\n"

func TestUploadEndpointRequiresFiles(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/api/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "debe cargar primero el archivo base para inicializar el inventario", body["error"])
}

func TestUploadEndpointBaseCSV(t *testing.T) {
	app, s := newTestApp()

	buf, contentType := multipartBody(t, "base_file", "base.csv", []byte(baseCSV))
	req := httptest.NewRequest(fiber.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		OK            bool   `json:"ok"`
		InventoryName string `json:"inventory_name"`
		Summary       struct {
			BaseRecords    int `json:"base_records"`
			TotalProcessed int `json:"total_processed"`
		} `json:"summary"`
	}
	decodeJSON(t, resp, &body)
	assert.True(t, body.OK)
	assert.Equal(t, "default", body.InventoryName)
	assert.Equal(t, 2, body.Summary.BaseRecords)
	require.Len(t, s.products, 2)
	assert.Equal(t, "1", s.products[0].Code)

	// Segunda base sobre el mismo inventario: rechazada.
	buf, contentType = multipartBody(t, "base_file", "base.csv", []byte(baseCSV))
	req = httptest.NewRequest(fiber.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadBaseEndpointRequiresFile(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/api/upload-base", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, "El archivo base es requerido", body["error"])
}

func TestUploadBaseEndpointNamespaced(t *testing.T) {
	app, s := newTestApp()

	buf, contentType := multipartBody(t, "base_file", "base.csv", []byte(baseCSV))
	req := httptest.NewRequest(fiber.MethodPost, "/api/upload-base/FincaNorte", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Se importaron 2 productos correctamente", body["message"])
	require.Len(t, s.products, 2)
	assert.Equal(t, "fincanorte", s.products[0].InventoryName)
}

func TestProductsEndpoint(t *testing.T) {
	app, s := newTestApp()
	s.products = append(s.products, &entity.Product{
		ID: "p1", Code: "1", Description: "UREA", Group: "AGROQUIMICOS-FERTILIZANTES Y ABONOS",
		InventoryName: "default", InitialBalance: decimal.NewFromInt(15),
		InitialUnitCost: decimal.NewFromInt(100),
	})

	req := httptest.NewRequest(fiber.MethodGet, "/api/products", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeJSON(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "UREA", body[0]["description"])
	assert.Equal(t, 15.0, body[0]["initial_balance"])
}

func TestAnalysisEndpoint(t *testing.T) {
	app, s := newTestApp()
	s.products = append(s.products, &entity.Product{
		ID: "p1", Code: "1", Description: "UREA", Group: "MANTENIMIENTO",
		InventoryName: "default", InitialBalance: decimal.NewFromInt(5),
		InitialUnitCost: decimal.NewFromInt(100),
	})

	req := httptest.NewRequest(fiber.MethodGet, "/api/analysis", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeJSON(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "1", body[0]["codigo"])
	// Saldo constante y positivo todo el año: obsoleto.
	assert.Equal(t, "Obsoleto", body[0]["rotacion"])
	assert.Equal(t, 500.0, body[0]["valor_saldo_actual"])
}

func TestCreateEndpoint(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/api/create", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, true, body["ok"])
	assert.Contains(t, body["message"], "no está totalmente implementada")
}

func TestExportEndpointsNotImplemented(t *testing.T) {
	app, _ := newTestApp()

	for _, path := range []string{"/api/export/excel", "/api/export/pdf", "/api/export/pdf/otro"} {
		req := httptest.NewRequest(fiber.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode, path)
	}
}

func TestInventoriesEndpointEmpty(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/inventories", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []any
	decodeJSON(t, resp, &body)
	assert.Empty(t, body)
}
