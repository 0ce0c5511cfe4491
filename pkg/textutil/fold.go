// Package textutil normalización de texto para búsqueda.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold prepara un texto para comparación de búsqueda: minúsculas, sin marcas
// diacríticas y sin espacios en los extremos. "Taladro Eléctrico " y
// "taladro electrico" pliegan al mismo valor.
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
