package normalize

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Format clasificación de la hoja según sus columnas.
type Format string

const (
	FormatBase      Format = "base"      // snapshot inicial (tiene SALDO_INICIAL)
	FormatMovements Format = "movements" // movimientos (MOVIMIENTO / SALIDA / ENTRADA)
	FormatDetailed  Format = "detailed"  // kardex detallado por ítem
)

// Tolerancia absoluta al cruzar total contra cantidad × costo unitario.
var totalTolerance = decimal.NewFromFloat(0.1)

// DetectFormat clasifica una hoja por la presencia de columnas características.
// Clasificación pura, sin efectos; los lectores de layout fijo no la usan.
func DetectFormat(headers []string) Format {
	set := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		set[CleanText(h)] = struct{}{}
	}
	if _, ok := set["SALDO_INICIAL"]; ok {
		return FormatBase
	}
	for _, col := range []string{"MOVIMIENTO", "SALIDA", "ENTRADA"} {
		if _, ok := set[col]; ok {
			return FormatMovements
		}
	}
	return FormatDetailed
}

// ValidateRow valida presencia de campos y consistencia numérica de una fila
// ya parseada según su formato. Devuelve (false, motivo) cuando la fila debe
// rechazarse; el motivo es legible para el log de errores del importador.
func ValidateRow(row map[string]string, format Format) (bool, string) {
	var required []string
	switch format {
	case FormatBase:
		required = []string{"CODIGO", "DESCRIPCION CODIGO", "SALDO_INICIAL", "COSTO_UNITARIO"}
	case FormatMovements:
		required = []string{"CODIGO", "MOVIMIENTO", "FECHA"}
		if row["SALIDA"] == "" && row["ENTRADA"] == "" {
			return false, "Falta SALIDA o ENTRADA"
		}
		if row["UNITARIO"] == "" && row["TOTAL"] == "" {
			return false, "Falta UNITARIO o TOTAL"
		}
	default: // detailed
		required = []string{"ITEM", "FECHA", "LOCALIZACION"}
		if row["CANTIDAD"] == "" && row["ENTRADA"] == "" && row["SALIDA"] == "" {
			return false, "Falta CANTIDAD, ENTRADA o SALIDA"
		}
		if row["UNITARIO"] == "" && row["UNITARI"] == "" && row["TOTAL"] == "" {
			return false, "Falta UNITARIO o TOTAL"
		}
	}

	for _, field := range required {
		if row[field] == "" {
			return false, fmt.Sprintf("Falta %s", field)
		}
	}

	salida := ParseDecimal(row["SALIDA"])
	entrada := ParseDecimal(row["ENTRADA"])
	cantidad := ParseDecimal(row["CANTIDAD"])
	saldoInicial := ParseDecimal(row["SALDO_INICIAL"])
	unitario := ParseDecimal(firstNonEmpty(row["UNITARIO"], row["UNITARI"], row["COSTO_UNITARIO"]))
	total := ParseDecimal(firstNonEmpty(row["TOTAL"], row["VALOR_TOTAL"]))

	var quantity decimal.Decimal
	if format == FormatBase {
		quantity = saldoInicial
	} else if !cantidad.IsZero() {
		quantity = cantidad
	} else {
		quantity = entrada.Sub(salida)
	}

	if quantity.IsZero() {
		return false, "La cantidad no puede ser cero"
	}
	if unitario.IsNegative() {
		return false, "Costo unitario no puede ser negativo"
	}

	if !total.IsZero() && !unitario.IsZero() {
		expected := quantity.Abs().Mul(unitario)
		if total.Sub(expected).Abs().GreaterThan(totalTolerance) {
			return false, fmt.Sprintf(
				"El total no coincide con la cantidad y el costo unitario (Total: %s, Calculado: %s)",
				total.String(), expected.String(),
			)
		}
	}

	return true, ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
