package importer

import (
	"context"

	"github.com/agroinv/inventario-api/internal/domain/repository"
)

// File un archivo subido: nombre original y contenido completo.
type File struct {
	Name    string
	Content []byte
}

// BaseRow fila cruda del archivo base (snapshot inicial, columnas A–J).
// Las celdas llegan como texto; el importador normaliza números y fechas.
type BaseRow struct {
	FechaCorte    string
	Mes           string
	Almacen       string
	Grupo         string
	Codigo        string
	Descripcion   string
	Cantidad      string
	UnidadMedida  string
	CostoUnitario string
	ValorTotal    string
	Line          int // fila en la hoja (1-based), para mensajes de error
}

// UpdateRow fila cruda del archivo de actualización (columnas A, C, D, E, N, O, R, S, T, U, V).
type UpdateRow struct {
	Item         string
	DescItem     string
	Localizacion string
	Categoria    string
	Fecha        string
	Documento    string
	Entradas     string
	Salidas      string
	Unitario     string
	Total        string
	Cantidad     string
	Line         int
}

// SheetReader lee los dos layouts fijos de hoja de cálculo.
type SheetReader interface {
	ReadBase(f File) ([]BaseRow, error)
	ReadUpdate(f File) ([]UpdateRow, error)
}

// TxRunner ejecuta el callback dentro de una transacción, con los repos
// atados a la misma. Lo usa la variante de reemplazo de base, que debe
// borrar lo anterior e importar lo nuevo como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batches repository.BatchRepository,
		products repository.ProductRepository,
		records repository.RecordRepository,
	) error) error
}
