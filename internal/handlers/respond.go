package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/middleware"
	"relevamiento-gesell/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(data)
}

// writeError maps the error taxonomy onto HTTP statuses. Storage failures are
// logged with their cause and answered opaquely.
func writeError(w http.ResponseWriter, logr *zap.Logger, err error) {
	var status int
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
		logr.Error("operación fallida", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": apperrors.Message(err)})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("cuerpo de la petición inválido")
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("id inválido")
	}
	return id, nil
}

func esAdmin(r *http.Request) bool {
	user := middleware.CurrentUser(r.Context())
	return user != nil && user.Rol == models.RolAdmin
}

func nombreAgente(r *http.Request) string {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		return ""
	}
	return user.Nombre
}
