// internal/game/match.go
//
// Answer matching and autocomplete suggestions.
//
// Matching is deliberately permissive: besides exact equality with the
// canonical name or an alternative, a guess also counts when it contains an
// alternative or is contained in one ("golf" ~ "Volkswagen Golf").
package game

import (
	"strings"

	"github.com/robalobadob/taillight/internal/catalog"
)

const maxSuggestions = 5

// normalize lowercases and trims a candidate or guess.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsMatch reports whether guess identifies v. Blank guesses never match.
func IsMatch(guess string, v catalog.Vehicle) bool {
	g := normalize(guess)
	if g == "" {
		return false
	}
	if g == normalize(v.Name) {
		return true
	}
	for _, alt := range v.Alternatives {
		a := normalize(alt)
		if a == "" {
			// An empty alternative is a substring of everything.
			continue
		}
		if g == a || strings.Contains(g, a) || strings.Contains(a, g) {
			return true
		}
	}
	return false
}

// Suggest returns up to five catalog names or alternatives containing
// prefix (case-insensitive, anywhere in the string), in catalog order.
func Suggest(prefix string, vehicles []catalog.Vehicle) []string {
	if prefix == "" {
		return nil
	}
	needle := strings.ToLower(prefix)
	seen := make(map[string]struct{})
	out := make([]string, 0, maxSuggestions)

	add := func(candidate string) bool {
		if _, dup := seen[candidate]; dup {
			return false
		}
		if !strings.Contains(strings.ToLower(candidate), needle) {
			return false
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
		return len(out) == maxSuggestions
	}

	for _, v := range vehicles {
		if add(v.Name) {
			return out
		}
		for _, alt := range v.Alternatives {
			if add(alt) {
				return out
			}
		}
	}
	return out
}
