package handlers

import (
	"net/http"

	"relevamiento-gesell/internal/services"

	"go.uber.org/zap"
)

type BalnearioHandler struct {
	service *services.PrestadorService
	logr    *zap.Logger
}

func NewBalnearioHandler(svc *services.PrestadorService, logr *zap.Logger) *BalnearioHandler {
	return &BalnearioHandler{service: svc, logr: logr}
}

func (h *BalnearioHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListBalnearios(r.Context(), esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *BalnearioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BalnearioInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.service.CreateBalneario(r.Context(), in)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("balneario creado", zap.Int64("id", row.ID), zap.String("prestador", row.Prestador))
	writeJSON(w, http.StatusCreated, row)
}

func (h *BalnearioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	var in services.BalnearioInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.service.UpdateBalneario(r.Context(), id, in, esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *BalnearioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	if err := h.service.DeleteBalneario(r.Context(), id); err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("balneario eliminado", zap.Int64("id", id))
	writeJSON(w, http.StatusNoContent, nil)
}
