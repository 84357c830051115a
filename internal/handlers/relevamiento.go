package handlers

import (
	"net/http"

	"relevamiento-gesell/internal/services"

	"go.uber.org/zap"
)

// RelevamientoHandler serves the survey endpoints for the three provider
// types: per-date reads, record upserts, date indexes and launch configs.
type RelevamientoHandler struct {
	service *services.RelevamientoService
	logr    *zap.Logger
}

func NewRelevamientoHandler(svc *services.RelevamientoService, logr *zap.Logger) *RelevamientoHandler {
	return &RelevamientoHandler{service: svc, logr: logr}
}

// —— Alojamientos ——

// GetAlojamientos handles GET /relevamientos?fecha=YYYY-MM-DD
func (h *RelevamientoHandler) GetAlojamientos(w http.ResponseWriter, r *http.Request) {
	dia, err := h.service.AlojamientosPorFecha(r.Context(), r.URL.Query().Get("fecha"), esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, dia)
}

// UpsertAlojamiento handles POST /relevamientos
func (h *RelevamientoHandler) UpsertAlojamiento(w http.ResponseWriter, r *http.Request) {
	var in services.RelevamientoAlojamientoInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	reg, err := h.service.CargarAlojamiento(r.Context(), in, nombreAgente(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("relevamiento cargado",
		zap.String("fecha", reg.Fecha), zap.Int64("alojamiento_id", reg.AlojamientoID))
	writeJSON(w, http.StatusOK, reg)
}

type copiarUltimoRequest struct {
	Fecha         string `json:"fecha"`
	AlojamientoID *int64 `json:"alojamiento_id"`
}

// CopiarUltimo handles POST /relevamientos/copiar-ultimo
func (h *RelevamientoHandler) CopiarUltimo(w http.ResponseWriter, r *http.Request) {
	var req copiarUltimoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, err)
		return
	}

	res, err := h.service.CopiarUltimo(r.Context(), req.Fecha, req.AlojamientoID, nombreAgente(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("relevamiento copiado",
		zap.String("desde", res.Copiado), zap.String("hasta", res.Fecha), zap.Int("filas", res.Filas))
	writeJSON(w, http.StatusOK, res)
}

// FechasAlojamientos handles GET /relevamientos/fechas
func (h *RelevamientoHandler) FechasAlojamientos(w http.ResponseWriter, r *http.Request) {
	fechas, err := h.service.FechasAlojamientos(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, fechas)
}

// GetConfigAlojamientos handles GET /relevamiento-config. With ?fecha= it
// answers the config for that day, defaults included; without it, the full
// launch history newest first.
func (h *RelevamientoHandler) GetConfigAlojamientos(w http.ResponseWriter, r *http.Request) {
	if fecha := r.URL.Query().Get("fecha"); fecha != "" {
		cfg, err := h.service.ConfigAlojamientos(r.Context(), fecha)
		if err != nil {
			writeError(w, h.logr, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
		return
	}

	rows, err := h.service.ListConfigsAlojamientos(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type lanzarAlojamientosRequest struct {
	Fecha              string `json:"fecha"`
	ConsultarOcupacion bool   `json:"consultar_ocupacion"`
	ConsultarReservas  bool   `json:"consultar_reservas"`
}

// LanzarAlojamientos handles POST /relevamiento-config
func (h *RelevamientoHandler) LanzarAlojamientos(w http.ResponseWriter, r *http.Request) {
	var req lanzarAlojamientosRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, err)
		return
	}

	cfg, err := h.service.LanzarAlojamientos(r.Context(), req.Fecha, req.ConsultarOcupacion, req.ConsultarReservas)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("relevamiento lanzado", zap.String("fecha", cfg.Fecha))
	writeJSON(w, http.StatusOK, cfg)
}

// —— Inmobiliarias ——

func (h *RelevamientoHandler) GetInmobiliarias(w http.ResponseWriter, r *http.Request) {
	dia, err := h.service.InmobiliariasPorFecha(r.Context(), r.URL.Query().Get("fecha"), esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, dia)
}

func (h *RelevamientoHandler) UpsertInmobiliaria(w http.ResponseWriter, r *http.Request) {
	var in services.RelevamientoInmobiliariaInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	reg, err := h.service.CargarInmobiliaria(r.Context(), in, nombreAgente(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RelevamientoHandler) FechasInmobiliarias(w http.ResponseWriter, r *http.Request) {
	fechas, err := h.service.FechasInmobiliarias(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, fechas)
}

// GetConfigInmobiliarias handles GET /inmobiliarias-config. With ?fecha= it
// answers the config row or null when the day was never launched.
func (h *RelevamientoHandler) GetConfigInmobiliarias(w http.ResponseWriter, r *http.Request) {
	if fecha := r.URL.Query().Get("fecha"); fecha != "" {
		cfg, err := h.service.ConfigInmobiliarias(r.Context(), fecha)
		if err != nil {
			writeError(w, h.logr, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
		return
	}

	rows, err := h.service.ListConfigsInmobiliarias(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type lanzarFechaRequest struct {
	Fecha string `json:"fecha"`
}

func (h *RelevamientoHandler) LanzarInmobiliarias(w http.ResponseWriter, r *http.Request) {
	var req lanzarFechaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, err)
		return
	}

	cfg, err := h.service.LanzarInmobiliarias(r.Context(), req.Fecha)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("relevamiento de inmobiliarias lanzado", zap.String("fecha", cfg.Fecha))
	writeJSON(w, http.StatusOK, cfg)
}

// —— Balnearios ——

func (h *RelevamientoHandler) GetBalnearios(w http.ResponseWriter, r *http.Request) {
	dia, err := h.service.BalneariosPorFecha(r.Context(), r.URL.Query().Get("fecha"), esAdmin(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, dia)
}

func (h *RelevamientoHandler) UpsertBalneario(w http.ResponseWriter, r *http.Request) {
	var in services.RelevamientoBalnearioInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	reg, err := h.service.CargarBalneario(r.Context(), in, nombreAgente(r))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RelevamientoHandler) FechasBalnearios(w http.ResponseWriter, r *http.Request) {
	fechas, err := h.service.FechasBalnearios(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, fechas)
}

func (h *RelevamientoHandler) GetConfigBalnearios(w http.ResponseWriter, r *http.Request) {
	if fecha := r.URL.Query().Get("fecha"); fecha != "" {
		cfg, err := h.service.ConfigBalnearios(r.Context(), fecha)
		if err != nil {
			writeError(w, h.logr, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
		return
	}

	rows, err := h.service.ListConfigsBalnearios(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *RelevamientoHandler) LanzarBalnearios(w http.ResponseWriter, r *http.Request) {
	var req lanzarFechaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, err)
		return
	}

	cfg, err := h.service.LanzarBalnearios(r.Context(), req.Fecha)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("relevamiento de balnearios lanzado", zap.String("fecha", cfg.Fecha))
	writeJSON(w, http.StatusOK, cfg)
}
