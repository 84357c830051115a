package utils

import "strings"

// CategoriaSinCategorizar is the fallback for inputs that yield no tokens.
const CategoriaSinCategorizar = "Sin categorizar"

// CategoriasCanonicas is the closed list the lodging catalog accepts. Matching
// is case-insensitive; the canonical spelling wins.
var CategoriasCanonicas = []string{
	CategoriaSinCategorizar,
	"Hotel",
	"Hotel 1*",
	"Hotel 2*",
	"Hotel 3*",
	"Apart Hotel",
	"Hostería 2*",
	"Departamentos con servicios",
}

// CategoriaSinonimos maps retired historical labels onto the current
// canonical ones. This is domain data, kept separate from the algorithm so new
// legacy spellings can be added without touching it.
var CategoriaSinonimos = map[string]string{
	"hotel 4*":    "Hotel 3*",
	"hostería 3*": "Hostería 2*",
}

// NormalizeCategoria canonicalizes a free-text category value: split on
// commas, trim, case-insensitive match against the canonical list, then the
// synonym table; unmatched tokens pass through as typed. Duplicates collapse,
// order of first appearance is kept.
func NormalizeCategoria(val string) string {
	parts := strings.Split(val, ",")

	var out []string
	seen := make(map[string]struct{})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		canon := canonCategoria(p)
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		out = append(out, canon)
	}
	if len(out) == 0 {
		return CategoriaSinCategorizar
	}
	return strings.Join(out, ", ")
}

func canonCategoria(token string) string {
	lower := strings.ToLower(token)
	for _, c := range CategoriasCanonicas {
		if strings.ToLower(c) == lower {
			return c
		}
	}
	if mapped, ok := CategoriaSinonimos[lower]; ok {
		return mapped
	}
	return token
}
