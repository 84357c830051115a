package utils

import (
	"time"

	"relevamiento-gesell/internal/apperrors"
)

const fechaLayout = "2006-01-02"

// ValidarFecha checks an ISO calendar date (YYYY-MM-DD). Survey dates are
// stored as these strings so that lexicographic order is chronological order.
func ValidarFecha(fecha string) error {
	if fecha == "" {
		return apperrors.Validation("fecha requerida")
	}
	if _, err := time.Parse(fechaLayout, fecha); err != nil {
		return apperrors.Validationf("fecha inválida: %s", fecha)
	}
	return nil
}
