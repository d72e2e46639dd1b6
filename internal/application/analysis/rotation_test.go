package analysis_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/agroinv/inventario-api/internal/application/analysis"
)

func balances(vals ...int64) [12]decimal.Decimal {
	var b [12]decimal.Decimal
	for i, v := range vals {
		b[i] = decimal.NewFromInt(v)
	}
	return b
}

func TestClassifyRotation_Obsoleto(t *testing.T) {
	// Saldo idéntico y positivo los doce meses.
	r := analysis.ClassifyRotation(balances(5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5))
	assert.Equal(t, analysis.RotationObsolete, r.Rotation)
	assert.True(t, r.StagnantAllYear)
	assert.False(t, r.HighRotation)
}

func TestClassifyRotation_ActivoPorCambioReciente(t *testing.T) {
	// Cambio en el mes 11: los últimos tres saldos no son idénticos.
	r := analysis.ClassifyRotation(balances(5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 10, 10))
	assert.Equal(t, analysis.RotationActive, r.Rotation)
	assert.False(t, r.StagnantAllYear)
}

func TestClassifyRotation_Estancado(t *testing.T) {
	// Variación a mitad de año y los últimos tres meses idénticos y positivos.
	r := analysis.ClassifyRotation(balances(0, 0, 0, 0, 0, 0, 0, 0, 0, 5, 5, 5))
	assert.Equal(t, analysis.RotationStagnant, r.Rotation)
	assert.False(t, r.StagnantAllYear)
}

func TestClassifyRotation_TodoCeroEsActivo(t *testing.T) {
	r := analysis.ClassifyRotation(balances(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0))
	assert.Equal(t, analysis.RotationActive, r.Rotation)
	assert.False(t, r.StagnantAllYear)
	assert.False(t, r.HighRotation)
}

func TestClassifyRotation_AltaRotacion(t *testing.T) {
	// Dos cambios de saldo en el año → alta rotación, aunque termine estancado.
	r := analysis.ClassifyRotation(balances(5, 8, 8, 8, 8, 8, 8, 8, 8, 3, 3, 3))
	assert.True(t, r.HighRotation)
	assert.Equal(t, analysis.RotationStagnant, r.Rotation)

	// Un solo cambio no alcanza.
	r = analysis.ClassifyRotation(balances(5, 5, 5, 5, 5, 5, 8, 8, 8, 8, 8, 8))
	assert.False(t, r.HighRotation)
}

func TestMonthEndBalances(t *testing.T) {
	var monthly [12]decimal.Decimal
	monthly[0] = decimal.NewFromInt(10)  // enero +10
	monthly[5] = decimal.NewFromInt(-4)  // junio -4

	b := analysis.MonthEndBalances(decimal.NewFromInt(2), monthly)
	assert.True(t, b[0].Equal(decimal.NewFromInt(12)))
	assert.True(t, b[4].Equal(decimal.NewFromInt(12)))
	assert.True(t, b[5].Equal(decimal.NewFromInt(8)))
	assert.True(t, b[11].Equal(decimal.NewFromInt(8)))
}
