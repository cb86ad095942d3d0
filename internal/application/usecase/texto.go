package usecase

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizar pasa a minúsculas y quita tildes y diéresis ("Limón" → "limon").
func normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// coincide indica si q aparece en texto sin distinguir mayúsculas ni tildes. q vacío coincide siempre.
func coincide(texto, q string) bool {
	q = normalizar(q)
	if q == "" {
		return true
	}
	return strings.Contains(normalizar(texto), q)
}

// ordenarPorNombre ordena in-place con la colación del español (ñ después de n, tildes ignoradas).
func ordenarPorNombre[T any](items []T, nombre func(T) string) {
	// collate.Collator no es seguro para uso concurrente
	c := collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(nombre(items[i]), nombre(items[j])) < 0
	})
}

// filtrar devuelve los elementos cuyo nombre coincide con q.
func filtrar[T any](items []T, q string, nombre func(T) string) []T {
	if strings.TrimSpace(q) == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if coincide(nombre(it), q) {
			out = append(out, it)
		}
	}
	return out
}
