package normalize_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroinv/inventario-api/internal/normalize"
)

// ──────────────────────────────────────────────────────────────────────────────
// ParseDecimal
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDecimal_FormatosLocales(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234.56", "1234.56"},
		{"1234,56", "1234.56"},            // coma decimal
		{"1.234.567,89", "1234567.89"},    // puntos de miles, coma decimal
		{"$ 1.500,25", "1500.25"},         // símbolo de moneda
		{"-42", "-42"},
		{"1.5E3", "1500"},                 // notación científica
		{"2e-2", "0.02"},
	}
	for _, c := range cases {
		got := normalize.ParseDecimal(c.in)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"ParseDecimal(%q) = %s, esperado %s", c.in, got, c.want)
	}
}

func TestParseDecimal_VariasComas(t *testing.T) {
	// Más de una coma sin puntos: todas menos la última son separadores de miles.
	got := normalize.ParseDecimal("1,234,56")
	assert.True(t, got.Equal(decimal.RequireFromString("1234.56")))

	// Varias comas combinadas con punto decimal no son un formato soportado:
	// la reescritura produce una cadena ambigua y el resultado es cero.
	assert.True(t, normalize.ParseDecimal("1,234,567.89").IsZero())
}

func TestParseDecimal_EntradaInvalidaDevuelveCero(t *testing.T) {
	for _, in := range []string{"", "   ", "nan", "NaN", "None", "abc", "--", "E+", "12E99X"} {
		got := normalize.ParseDecimal(in)
		assert.True(t, got.IsZero(), "ParseDecimal(%q) debe ser cero, fue %s", in, got)
	}
}

// ParseDecimal es idempotente sobre su propia salida canónica.
func TestParseDecimal_Idempotente(t *testing.T) {
	for _, in := range []string{"1.234.567,89", "$ 99,9", "3,1415", "-0,5", "7.25E2"} {
		once := normalize.ParseDecimal(in)
		twice := normalize.ParseDecimal(once.String())
		assert.True(t, once.Equal(twice), "no idempotente para %q: %s vs %s", in, once, twice)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseDate
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDate_YYYYMMDD(t *testing.T) {
	got := normalize.ParseDate("20230131")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseDate_FormatosGenericos(t *testing.T) {
	cases := map[string]time.Time{
		"2023-01-31": time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		"2023/01/31": time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		"01/31/2023": time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), // mes primero
		"31/01/2023": time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), // día primero
	}
	for in, want := range cases {
		got := normalize.ParseDate(in)
		require.NotNil(t, got, "ParseDate(%q) no debe ser nil", in)
		assert.Equal(t, want, *got, "ParseDate(%q)", in)
	}
}

func TestParseDate_NotacionCientifica(t *testing.T) {
	// Excel puede exportar 20230131 como 2.0230131E7.
	got := normalize.ParseDate("2.0230131E7")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseDate_InvalidaDevuelveNil(t *testing.T) {
	for _, in := range []string{"", "nan", "None", "no-es-fecha", "20231345", "Enero"} {
		assert.Nil(t, normalize.ParseDate(in), "ParseDate(%q) debe ser nil", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseDocument
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDocument(t *testing.T) {
	cases := []struct {
		in       string
		typ, num string
	}{
		{"SA12345", "SA", "12345"},
		{"EA67890", "EA", "67890"},
		{"foo EA 042 bar", "EA", "042"},
		{"sa 77", "SA", "77"},
		{"", "", ""},
		{"XX999", "", ""},
	}
	for _, c := range cases {
		typ, num := normalize.ParseDocument(c.in)
		assert.Equal(t, c.typ, typ, "tipo para %q", c.in)
		assert.Equal(t, c.num, num, "número para %q", c.in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeos y limpieza de texto
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizer_MapLocation(t *testing.T) {
	n := normalize.New(normalize.DefaultMaps())
	assert.Equal(t, "FINCA SALITRE", n.MapLocation("102-05"))
	assert.Equal(t, "FINCA SALITRE", n.MapLocation("  102-05  "))
	// Sin mapeo: se devuelve el código recortado.
	assert.Equal(t, "999-99", n.MapLocation(" 999-99 "))
	assert.Equal(t, "", n.MapLocation(""))
}

func TestNormalizer_MapCategory(t *testing.T) {
	n := normalize.New(normalize.DefaultMaps())
	// Por código
	assert.Equal(t, "MANTENIMIENTO", n.MapCategory("3"))
	// Ya es un nombre canónico
	assert.Equal(t, "DOTACION Y SEGURIDAD", n.MapCategory("dotacion y seguridad"))
	// Por palabra clave
	assert.Equal(t, "AGROQUIMICOS-FERTILIZANTES Y ABONOS", n.MapCategory("INSUMOS FERTILIZANTES 2024"))
	assert.Equal(t, "PAPELERIA Y ASEO", n.MapCategory("ELEMENTOS DE ASEO"))
	// Sin coincidencia: entrada recortada
	assert.Equal(t, "OTROS", n.MapCategory(" OTROS "))
}

func TestNormalizer_MapUnit(t *testing.T) {
	n := normalize.New(normalize.DefaultMaps())
	assert.Equal(t, "KILOGRAMO", n.MapUnit("KIL"))
	assert.Equal(t, "BULTO", n.MapUnit("bul"))
	assert.Equal(t, "ZZZ", n.MapUnit("ZZZ"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "ABONO TRIPLE 15", normalize.CleanText("  abono   triple\t15 "))
	assert.Equal(t, "", normalize.CleanText(""))
}
