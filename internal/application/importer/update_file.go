package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agroinv/inventario-api/internal/domain/entity"
	"github.com/agroinv/inventario-api/internal/domain/repository"
	"github.com/agroinv/inventario-api/internal/normalize"
)

var numericStrip = strings.NewReplacer(",", ".")

// cleanNumeric normaliza una celda numérica del archivo de actualización:
// coma a punto y fuera todo lo que no sea dígito, punto o signo.
func cleanNumeric(raw string) decimal.Decimal {
	s := numericStrip.Replace(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// cleanDocument recorta el documento al primer marcador SA o EA; sin marcador
// la cadena queda como está (así entran los tipos alternos como GF).
func cleanDocument(raw string) string {
	doc := strings.ToUpper(strings.TrimSpace(raw))
	idxSA := strings.Index(doc, "SA")
	idxEA := strings.Index(doc, "EA")
	switch {
	case idxSA >= 0 && (idxEA < 0 || idxSA < idxEA):
		return doc[idxSA:]
	case idxEA >= 0:
		return doc[idxEA:]
	}
	return doc
}

// cleanDate deja la fecha en ISO: las de ocho dígitos (20230115) se
// reescriben; el resto se recorta y se valida después.
func cleanDate(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) == 8 {
		if t, err := time.Parse("20060102", s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

type updateRecord struct {
	code string
	rec  *entity.InventoryRecord
}

// processUpdate convierte filas de movimiento en registros: limpia cada fila,
// incorpora los productos que el archivo referencia pero no existen, y
// descarta movimientos de cantidad neta cero o fecha inválida. Devuelve
// cuántos registros se crearon.
func (uc *UseCase) processUpdate(
	ctx context.Context,
	products repository.ProductRepository,
	records repository.RecordRepository,
	inventoryName, batchID string,
	rows []UpdateRow,
) int {
	prepared := make([]updateRecord, 0, len(rows))
	codesSeen := make(map[string]UpdateRow)
	codeList := make([]string, 0)
	invalidDates := 0

	for _, row := range rows {
		code := strings.TrimLeft(strings.TrimSpace(row.Item), "0")
		if code == "" {
			continue
		}
		rawDate := cleanDate(row.Fecha)
		doc := cleanDocument(row.Documento)
		if rawDate == "" || doc == "" {
			continue
		}

		// La incorporación considera todos los códigos del archivo, aunque sus
		// movimientos se descarten después por cantidad cero o fecha inválida.
		if _, ok := codesSeen[code]; !ok {
			codesSeen[code] = row
			codeList = append(codeList, code)
		}

		entries := cleanNumeric(row.Entradas)
		exits := cleanNumeric(row.Salidas)
		quantity := entries.Sub(exits)
		if quantity.IsZero() {
			continue
		}

		date, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			invalidDates++
			continue
		}

		unitCost := normalize.ParseDecimal(row.Unitario)
		// El total solo se deriva cuando la celda viene vacía; un cero
		// explícito se conserva.
		total := normalize.ParseDecimal(row.Total)
		if strings.TrimSpace(row.Total) == "" {
			total = quantity.Abs().Mul(unitCost)
		}

		var docType, docNumber *string
		if len(doc) >= 2 {
			dt, dn := doc[:2], doc[2:]
			docType, docNumber = &dt, &dn
		}

		finalQty := cleanNumeric(row.Cantidad)

		prepared = append(prepared, updateRecord{
			code: code,
			rec: &entity.InventoryRecord{
				BatchID:        batchID,
				Warehouse:      uc.norm.MapLocation(row.Localizacion),
				Date:           date,
				DocumentType:   docType,
				DocumentNumber: docNumber,
				Quantity:       quantity,
				UnitCost:       unitCost,
				Total:          total,
				Category:       uc.norm.MapCategory(row.Categoria),
				FinalQuantity:  &finalQty,
			},
		})
	}
	if invalidDates > 0 {
		uc.log.Warn().Int("rows", invalidDates).Msg("filas descartadas por fecha inválida")
	}
	if len(codeList) == 0 {
		return 0
	}

	byCode, err := products.MapByCodes(ctx, inventoryName, codeList)
	if err != nil {
		uc.log.Error().Err(err).Str("inventory", inventoryName).Msg("resolver productos por código")
		return 0
	}

	// Productos incorporados: el archivo los mueve pero el base no los trajo.
	// Nacen con saldo y costo cero; si la inserción falla, las filas de ese
	// código se descartan.
	missing := make([]string, 0)
	for _, code := range codeList {
		if _, ok := byCode[code]; !ok {
			missing = append(missing, code)
		}
	}
	sort.Strings(missing)
	for _, code := range missing {
		row := codesSeen[code]
		description := strings.TrimSpace(row.DescItem)
		if description == "" {
			description = fmt.Sprintf("Producto %s", code)
		}
		p := &entity.Product{
			ID:            uuid.NewString(),
			Code:          code,
			Description:   description,
			Group:         uc.norm.MapCategory(row.Categoria),
			InventoryName: inventoryName,
		}
		if err := products.Insert(ctx, p); err != nil {
			uc.log.Warn().Err(err).Str("code", code).Msg("producto incorporado descartado")
			continue
		}
		byCode[code] = p
	}

	count := 0
	pending := make([]*entity.InventoryRecord, 0, uc.chunkSize)
	for _, ur := range prepared {
		p, ok := byCode[ur.code]
		if !ok {
			continue
		}
		ur.rec.ProductID = p.ID
		pending = append(pending, ur.rec)
		count++

		if len(pending) >= uc.chunkSize {
			uc.flushRecords(ctx, records, pending)
			pending = pending[:0]
		}
	}
	uc.flushRecords(ctx, records, pending)

	return count
}
