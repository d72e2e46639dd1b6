package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	nonNumericRe = regexp.MustCompile(`[^\d.,\-]`)
	yyyymmddRe   = regexp.MustCompile(`^\d{8}$`)
	docWordRe    = regexp.MustCompile(`\b(SA|EA)\b\D*?(\d+)`)
	docCompactRe = regexp.MustCompile(`(SA|EA)(\d+)`)
)

// Formatos de fecha aceptados por ParseDate tras descartar YYYYMMDD.
// Mes-primero antes que día-primero, como el parse genérico del sistema original.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
}

func isBlank(s string) bool {
	switch s {
	case "", "nan", "NaN", "None":
		return true
	}
	return false
}

// ParseDecimal limpia y convierte a decimal una cadena que puede venir con
// notación científica, símbolos de moneda, y comas o puntos como separadores
// de miles o decimales. Entrada no parseable devuelve cero, nunca error.
func ParseDecimal(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if isBlank(s) {
		return decimal.Zero
	}

	// Notación científica: por el camino de float nativo.
	if strings.ContainsAny(s, "Ee") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	}

	s = nonNumericRe.ReplaceAllString(s, "")

	commas := strings.Count(s, ",")
	periods := strings.Count(s, ".")
	switch {
	case commas == 1 && periods > 1:
		// Puntos como separador de miles, coma decimal: 1.234.567,89
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case commas > 1:
		// Varias comas: la última es el separador decimal.
		parts := strings.Split(s, ",")
		s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	default:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate interpreta fechas en varios formatos (20230131, 31/01/2023,
// 2023-01-31, notación científica de Excel). Devuelve nil si no es parseable.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if isBlank(s) {
		return nil
	}

	if strings.ContainsAny(s, "Ee") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		s = strconv.FormatInt(int64(f), 10)
	}

	if yyyymmddRe.MatchString(s) {
		t, err := time.Parse("20060102", s)
		if err != nil {
			return nil
		}
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseDocument extrae el tipo (SA/EA) y el número de documento de una cadena.
// Acepta tanto "SA12345" como "foo EA 042 bar". Sin coincidencia devuelve ("", "").
func ParseDocument(raw string) (docType, docNumber string) {
	if raw == "" {
		return "", ""
	}
	s := strings.ToUpper(strings.TrimSpace(raw))

	if m := docWordRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	if m := docCompactRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return "", ""
}

// CleanText colapsa espacios y pasa a mayúsculas.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// Maps diccionarios de mapeo de códigos crudos a nombres canónicos.
// Son datos de configuración inmutables; el Normalizer no los modifica.
type Maps struct {
	Locations  map[string]string
	Categories map[string]string
	Units      map[string]string
}

// DefaultMaps devuelve los diccionarios de la operación agrícola por defecto.
func DefaultMaps() Maps {
	return Maps{
		Locations: map[string]string{
			"102-05": "FINCA SALITRE",
			"102-10": "CONSTRUCCIONES Y EDIFICIOS",
			"103-05": "FINCA SAN NICOLAS",
		},
		Categories: map[string]string{
			"1": "AGROQUIMICOS-FERTILIZANTES Y ABONOS",
			"2": "DOTACION Y SEGURIDAD",
			"3": "MANTENIMIENTO",
			"4": "MATERIAL DE EMPAQUE",
			"5": "PAPELERIA Y ASEO",
		},
		Units: map[string]string{
			"BUL": "BULTO", "CAJ": "CAJA", "CC3": "CENTIMETRO CUBICO",
			"CUA": "CUARTO", "FCO": "FRASCO", "GLN": "GALON", "GMS": "GRAMO",
			"JUE": "JUEGO", "KIL": "KILOGRAMO", "LIB": "LIBRA", "LIT": "LITRO",
			"LON": "LONA", "MET": "METRO", "PAC": "PACA", "PAQ": "PAQUETE",
			"PAR": "PAR", "RES": "RESMA", "ROL": "ROLLO", "SOB": "SOBRE",
			"TUB": "TUBO", "UND": "UNIDAD", "VJE": "VIAJE",
		},
	}
}

// Palabras clave para el fallback de categorías cuando el código no está en el mapa.
var categoryKeywords = []struct {
	words    []string
	category string
}{
	{[]string{"AGROQUIMICOS", "FERTILIZANTES", "ABONOS"}, "AGROQUIMICOS-FERTILIZANTES Y ABONOS"},
	{[]string{"DOTACION", "SEGURIDAD"}, "DOTACION Y SEGURIDAD"},
	{[]string{"MANTENIMIENTO"}, "MANTENIMIENTO"},
	{[]string{"EMPAQUE", "MATERIAL"}, "MATERIAL DE EMPAQUE"},
	{[]string{"PAPELERIA", "ASEO"}, "PAPELERIA Y ASEO"},
}

// Normalizer resuelve códigos crudos de localización, categoría y unidad de
// medida contra los diccionarios inyectados en la construcción.
type Normalizer struct {
	maps Maps
}

// New construye un Normalizer con los diccionarios dados.
func New(maps Maps) *Normalizer {
	return &Normalizer{maps: maps}
}

// MapLocation devuelve el nombre legible de un código de localización, o el
// código recortado si no hay mapeo.
func (n *Normalizer) MapLocation(code string) string {
	if code == "" {
		return ""
	}
	trimmed := strings.TrimSpace(code)
	if name, ok := n.maps.Locations[trimmed]; ok {
		return name
	}
	return trimmed
}

// MapCategory resuelve un código o nombre de categoría contra el diccionario:
// coincidencia exacta con un nombre canónico, luego por código, luego por
// palabras clave; en último caso devuelve la entrada recortada.
func (n *Normalizer) MapCategory(code string) string {
	if code == "" {
		return ""
	}
	trimmed := strings.TrimSpace(code)
	upper := strings.ToUpper(trimmed)

	for _, v := range n.maps.Categories {
		if upper == v {
			return v
		}
	}
	if v, ok := n.maps.Categories[upper]; ok {
		return v
	}
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(upper, w) {
				return kw.category
			}
		}
	}
	return trimmed
}

// MapUnit devuelve la unidad de medida canónica, o el código recortado si no hay mapeo.
func (n *Normalizer) MapUnit(code string) string {
	if code == "" {
		return ""
	}
	trimmed := strings.TrimSpace(code)
	if name, ok := n.maps.Units[strings.ToUpper(trimmed)]; ok {
		return name
	}
	return trimmed
}
