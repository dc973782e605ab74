package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// \s в RE2 только ASCII; неразрывный и прочие пробелы Unicode тоже дают дефис
	whitespace = regexp.MustCompile(`[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
)

// Make строит slug из имени страницы: нижний регистр, пробелы в дефисы,
// всё кроме [a-z0-9-] удаляется. Диакритика снимается до фильтрации,
// поэтому "Crème Brûlée" даёт "creme-brulee".
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	s := strings.TrimSpace(strings.ToLower(folded))
	s = whitespace.ReplaceAllString(s, "-")
	return disallowed.ReplaceAllString(s, "")
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return s != "" && !disallowed.MatchString(s)
}

// Normalize приводит slug из URL к виду, в котором он хранится
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
