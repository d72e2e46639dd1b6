package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Placeholder cuando el request no trae archivos (el batch igual se registra).
const NoFiles = "no-files"

// Sum calcula el SHA-256 en hexadecimal del contenido concatenado de los
// archivos subidos, en el orden de carga. Identifica re-importaciones de
// contenido byte-idéntico por inventario.
func Sum(contents ...[]byte) string {
	h := sha256.New()
	for _, c := range contents {
		h.Write(c)
	}
	return hex.EncodeToString(h.Sum(nil))
}
