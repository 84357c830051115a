package handlers

import (
	"net/http"

	"relevamiento-gesell/internal/services"

	"go.uber.org/zap"
)

type InmobiliariaHandler struct {
	service *services.PrestadorService
	logr    *zap.Logger
}

func NewInmobiliariaHandler(svc *services.PrestadorService, logr *zap.Logger) *InmobiliariaHandler {
	return &InmobiliariaHandler{service: svc, logr: logr}
}

func (h *InmobiliariaHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListInmobiliarias(r.Context(), esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *InmobiliariaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.InmobiliariaInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.service.CreateInmobiliaria(r.Context(), in)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("inmobiliaria creada", zap.Int64("id", row.ID), zap.String("prestador", row.Prestador))
	writeJSON(w, http.StatusCreated, row)
}

func (h *InmobiliariaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	var in services.InmobiliariaInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.service.UpdateInmobiliaria(r.Context(), id, in, esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *InmobiliariaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	if err := h.service.DeleteInmobiliaria(r.Context(), id); err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("inmobiliaria eliminada", zap.Int64("id", id))
	writeJSON(w, http.StatusNoContent, nil)
}
