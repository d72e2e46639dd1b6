package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agroinv/inventario-api/internal/normalize"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, normalize.FormatBase,
		normalize.DetectFormat([]string{"CODIGO", "SALDO_INICIAL", "COSTO_UNITARIO"}))
	assert.Equal(t, normalize.FormatMovements,
		normalize.DetectFormat([]string{"CODIGO", "MOVIMIENTO", "FECHA"}))
	assert.Equal(t, normalize.FormatMovements,
		normalize.DetectFormat([]string{"ITEM", "salida", "entrada"}))
	assert.Equal(t, normalize.FormatDetailed,
		normalize.DetectFormat([]string{"ITEM", "FECHA", "LOCALIZACION"}))
}

func TestValidateRow_CamposRequeridos(t *testing.T) {
	// base sin SALDO_INICIAL
	ok, reason := normalize.ValidateRow(map[string]string{
		"CODIGO": "001", "DESCRIPCION CODIGO": "ABONO", "COSTO_UNITARIO": "5",
	}, normalize.FormatBase)
	assert.False(t, ok)
	assert.Equal(t, "Falta SALDO_INICIAL", reason)

	// movements sin entradas ni salidas
	ok, reason = normalize.ValidateRow(map[string]string{
		"CODIGO": "001", "MOVIMIENTO": "SA1", "FECHA": "20230101", "UNITARIO": "5",
	}, normalize.FormatMovements)
	assert.False(t, ok)
	assert.Equal(t, "Falta SALIDA o ENTRADA", reason)

	// detailed sin costo ni total
	ok, reason = normalize.ValidateRow(map[string]string{
		"ITEM": "001", "FECHA": "20230101", "LOCALIZACION": "102-05", "CANTIDAD": "3",
	}, normalize.FormatDetailed)
	assert.False(t, ok)
	assert.Equal(t, "Falta UNITARIO o TOTAL", reason)
}

func TestValidateRow_CantidadCero(t *testing.T) {
	ok, reason := normalize.ValidateRow(map[string]string{
		"CODIGO": "001", "MOVIMIENTO": "SA1", "FECHA": "20230101",
		"ENTRADA": "5", "SALIDA": "5", "UNITARIO": "10",
	}, normalize.FormatMovements)
	assert.False(t, ok)
	assert.Equal(t, "La cantidad no puede ser cero", reason)
}

func TestValidateRow_CostoNegativo(t *testing.T) {
	ok, reason := normalize.ValidateRow(map[string]string{
		"CODIGO": "001", "MOVIMIENTO": "EA1", "FECHA": "20230101",
		"ENTRADA": "5", "SALIDA": "0", "UNITARIO": "-1",
	}, normalize.FormatMovements)
	assert.False(t, ok)
	assert.Equal(t, "Costo unitario no puede ser negativo", reason)
}

// Consistencia total vs cantidad × costo unitario, tolerancia absoluta 0.1.
func TestValidateRow_ConsistenciaDelTotal(t *testing.T) {
	row := map[string]string{
		"CODIGO": "001", "MOVIMIENTO": "EA1", "FECHA": "20230101",
		"ENTRADA": "0", "SALIDA": "0", "CANTIDAD": "5",
		"UNITARIO": "10", "TOTAL": "100",
	}
	ok, reason := normalize.ValidateRow(row, normalize.FormatMovements)
	assert.False(t, ok, "total 100 contra 5×10=50 debe rechazarse")
	assert.Contains(t, reason, "El total no coincide")

	row["TOTAL"] = "50.05"
	ok, reason = normalize.ValidateRow(row, normalize.FormatMovements)
	assert.True(t, ok, "50.05 está dentro de la tolerancia de 0.1: %s", reason)
	assert.Empty(t, reason)
}

func TestValidateRow_BaseValida(t *testing.T) {
	ok, reason := normalize.ValidateRow(map[string]string{
		"CODIGO": "001", "DESCRIPCION CODIGO": "ABONO TRIPLE 15",
		"SALDO_INICIAL": "10", "COSTO_UNITARIO": "5", "VALOR_TOTAL": "50",
	}, normalize.FormatBase)
	assert.True(t, ok, reason)
}
