package services

import (
	"database/sql"
	"errors"
	"math"
	"sort"

	"relevamiento-gesell/internal/apperrors"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func notFoundOrStorage(err error, notFoundMsg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.Storage("error de lectura", err)
}

// clampPct forces a percentage into [0,100]. Out-of-range values are clamped
// rather than rejected; nil stays nil.
func clampPct(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return &n
}

// ocupacionPct derives the occupancy percentage from capacity and occupied
// count. Missing or zero capacity yields nil, never 0.
func ocupacionPct(plazasTotales, plazasOcupadas *int) *int {
	if plazasTotales == nil || *plazasTotales <= 0 || plazasOcupadas == nil {
		return nil
	}
	pct := int(math.Round(float64(*plazasOcupadas) / float64(*plazasTotales) * 100))
	return &pct
}

const maxFechas = 80

// unionFechas merges the record-store and launch-config date sets, newest
// first, capped at maxFechas. ISO dates sort lexicographically.
func unionFechas(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, fechas := range [][]string{a, b} {
		for _, f := range fechas {
			if f == "" {
				continue
			}
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	if len(out) > maxFechas {
		out = out[:maxFechas]
	}
	return out
}
