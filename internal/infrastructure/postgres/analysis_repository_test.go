package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// La cadena de resolución de stock agrupa solo salidas con documento: una
// salida sin tipo o número no ancla el grupo ni entra en el mínimo.
func TestProductStockQueryAgrupaSoloSalidasConDocumento(t *testing.T) {
	anchor := productStockQuery[strings.Index(productStockQuery, "SELECT r3."):]
	assert.Contains(t, anchor, "r3.document_type IS NOT NULL")
	assert.Contains(t, anchor, "r3.document_number IS NOT NULL")
	assert.Contains(t, productStockQuery, "r2.document_type IS NOT NULL")
	assert.Contains(t, productStockQuery, "r2.document_number IS NOT NULL")

	// Grupos de la misma fecha se desempatan por documento ascendente.
	assert.Contains(t, anchor, "ORDER BY r3.date DESC, r3.document_type, r3.document_number")
}

// La valoración entra por última cantidad final positiva o saldo inicial
// positivo; un saldo final negativo con inicial positivo resta del total.
func TestTotalValuationQueryIncluyeInicialPositivo(t *testing.T) {
	assert.Contains(t, totalValuationQuery, "WHERE s.last_final > 0 OR s.initial_balance > 0")
	assert.NotContains(t, totalValuationQuery, "s.stock > 0")
}
