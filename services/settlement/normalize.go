package settlement

import "strings"

// knownTypos maps catalog naming drift that upstream never fixed
var knownTypos = map[string]string{
	"tarvel": "travel",
}

// NormalizeModeName canonicalizes a payment mode name for table lookups:
// lowercase, all whitespace removed, known typos fixed. Lookups use exact
// match on the normalized form, first match wins, which keeps fuzzy matching
// out of the money-math path.
func NormalizeModeName(name string) string {
	normalized := strings.ToLower(name)
	normalized = strings.Join(strings.Fields(normalized), "")
	for typo, fix := range knownTypos {
		normalized = strings.ReplaceAll(normalized, typo, fix)
	}
	return normalized
}
