package utils

import (
	"errors"
	"strings"

	"relevamiento-gesell/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct tag validation and converts the first failure into a
// caller-facing ValidationError.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.Validationf("campo inválido: %s", strings.ToLower(verrs[0].Field()))
	}
	return apperrors.Validation("datos inválidos")
}
