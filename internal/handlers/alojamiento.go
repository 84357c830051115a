package handlers

import (
	"net/http"

	"relevamiento-gesell/internal/services"

	"go.uber.org/zap"
)

// AlojamientoHandler serves the lodging catalog CRUD.
type AlojamientoHandler struct {
	service *services.PrestadorService
	logr    *zap.Logger
}

func NewAlojamientoHandler(svc *services.PrestadorService, logr *zap.Logger) *AlojamientoHandler {
	return &AlojamientoHandler{service: svc, logr: logr}
}

// List handles GET /alojamientos
func (h *AlojamientoHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListAlojamientos(r.Context(), esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Create handles POST /alojamientos
func (h *AlojamientoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.AlojamientoInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.service.CreateAlojamiento(r.Context(), in)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("alojamiento creado", zap.Int64("id", row.ID), zap.String("prestador", row.Prestador))
	writeJSON(w, http.StatusCreated, row)
}

// Update handles PUT /alojamientos/{id}
func (h *AlojamientoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	var in services.AlojamientoInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.service.UpdateAlojamiento(r.Context(), id, in, esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Delete handles DELETE /alojamientos/{id}
func (h *AlojamientoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	if err := h.service.DeleteAlojamiento(r.Context(), id); err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("alojamiento eliminado", zap.Int64("id", id))
	writeJSON(w, http.StatusNoContent, nil)
}
