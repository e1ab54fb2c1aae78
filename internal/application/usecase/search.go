package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform descompone a NFD, descarta las marcas diacríticas y recompone.
// Así "açúcar" y "acucar" comparan igual.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeQuery prepara un texto para comparación: sin acentos, minúsculas,
// sin espacios en los extremos.
func normalizeQuery(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// matchesQuery indica si alguno de los campos contiene el término ya
// normalizado. Un término vacío acepta todo.
func matchesQuery(normalizedQuery string, fields ...string) bool {
	if normalizedQuery == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(normalizeQuery(f), normalizedQuery) {
			return true
		}
	}
	return false
}
