// Package excel lee los dos layouts fijos de hoja de cálculo del inventario:
// el archivo base (snapshot inicial, columnas A–J con encabezado en la fila 1)
// y el archivo de actualización (kardex de movimientos, encabezado en la fila 4,
// columnas A, C, D, E, N, O, R, S, T, U, V). Devuelve celdas crudas como texto;
// la normalización numérica y de fechas es responsabilidad del importador.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/agroinv/inventario-api/internal/application/importer"
)

// Índices de columna del archivo de actualización (A, C, D, E, N, O, R, S, T, U, V).
var updateCols = []int{0, 2, 3, 4, 13, 14, 17, 18, 19, 20, 21}

const (
	baseHeaderRow   = 0 // la fila 1 trae encabezados
	updateHeaderRow = 3 // la fila 4 trae encabezados
)

// Reader implementa importer.SheetReader sobre excelize, con fallback a CSV
// según la extensión del archivo.
type Reader struct{}

// NewReader construye el lector de hojas de cálculo.
func NewReader() *Reader {
	return &Reader{}
}

// ReadBase parsea el archivo base. Acepta .xlsx (excelize) o .csv.
func (*Reader) ReadBase(f importer.File) ([]importer.BaseRow, error) {
	rows, err := sheetRows(f.Name, f.Content)
	if err != nil {
		return nil, err
	}
	if len(rows) <= baseHeaderRow+1 {
		return nil, nil
	}

	var out []importer.BaseRow
	for i := baseHeaderRow + 1; i < len(rows); i++ {
		r := rows[i]
		out = append(out, importer.BaseRow{
			FechaCorte:    cell(r, 0),
			Mes:           cell(r, 1),
			Almacen:       cell(r, 2),
			Grupo:         cell(r, 3),
			Codigo:        cell(r, 4),
			Descripcion:   cell(r, 5),
			Cantidad:      cell(r, 6),
			UnidadMedida:  cell(r, 7),
			CostoUnitario: cell(r, 8),
			ValorTotal:    cell(r, 9),
			Line:          i + 1,
		})
	}
	return out, nil
}

// ReadUpdate parsea un archivo de actualización. Acepta .xlsx o .csv.
func (*Reader) ReadUpdate(f importer.File) ([]importer.UpdateRow, error) {
	rows, err := sheetRows(f.Name, f.Content)
	if err != nil {
		return nil, err
	}
	if len(rows) <= updateHeaderRow+1 {
		return nil, nil
	}

	var out []importer.UpdateRow
	for i := updateHeaderRow + 1; i < len(rows); i++ {
		r := rows[i]
		out = append(out, importer.UpdateRow{
			Item:         cell(r, updateCols[0]),
			DescItem:     cell(r, updateCols[1]),
			Localizacion: cell(r, updateCols[2]),
			Categoria:    cell(r, updateCols[3]),
			Fecha:        cell(r, updateCols[4]),
			Documento:    cell(r, updateCols[5]),
			Entradas:     cell(r, updateCols[6]),
			Salidas:      cell(r, updateCols[7]),
			Unitario:     cell(r, updateCols[8]),
			Total:        cell(r, updateCols[9]),
			Cantidad:     cell(r, updateCols[10]),
			Line:         i + 1,
		})
	}
	return out, nil
}

// Headers devuelve los encabezados de la primera fila de la hoja, para la
// clasificación de formato del camino de ingestión libre.
func Headers(fileName string, content []byte) ([]string, error) {
	rows, err := sheetRows(fileName, content)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// sheetRows materializa la primera hoja como una matriz de celdas en texto.
func sheetRows(fileName string, content []byte) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return csvRows(content)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("el libro no contiene hojas")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheetName, err)
	}
	return rows, nil
}

// csvRows lee un CSV, transformando desde Windows-1252 cuando los bytes no son UTF-8
// (los exportes legados del ERP vienen en esa codificación).
func csvRows(content []byte) ([][]string, error) {
	data := content
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err == nil {
			data = decoded
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// detectDelimiter elige entre ';' y ',' según cuál aparece más en la primera línea.
func detectDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
