package handlers

import (
	"net/http"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler serves the user and permission administration endpoints.
type AdminHandler struct {
	perms *services.PermissionService
	users *services.UserService
	logr  *zap.Logger
}

func NewAdminHandler(perms *services.PermissionService, users *services.UserService, logr *zap.Logger) *AdminHandler {
	return &AdminHandler{perms: perms, users: users, logr: logr}
}

// ListPermisos handles GET /permisos
func (h *AdminHandler) ListPermisos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.perms.Catalog())
}

// GetRolePermisos handles GET /roles/{rol}/permisos
func (h *AdminHandler) GetRolePermisos(w http.ResponseWriter, r *http.Request) {
	keys, err := h.perms.EffectivePermissions(r.Context(), chi.URLParam(r, "rol"))
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

type setPermisosRequest struct {
	Permissions []string `json:"permissions"`
}

// SetRolePermisos handles PUT /roles/{rol}/permisos
func (h *AdminHandler) SetRolePermisos(w http.ResponseWriter, r *http.Request) {
	rol := chi.URLParam(r, "rol")
	var req setPermisosRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, err)
		return
	}

	keys, err := h.perms.SetPermissions(r.Context(), rol, req.Permissions)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("permisos actualizados", zap.String("rol", rol), zap.Int("cantidad", len(keys)))
	writeJSON(w, http.StatusOK, keys)
}

// ListUsers handles GET /users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// UpdateUser handles PUT /users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logr, apperrors.Validation("id inválido"))
		return
	}
	var in services.UserUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.logr, err)
		return
	}

	row, err := h.users.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	h.logr.Info("usuario actualizado", zap.String("id", id.String()), zap.String("rol", row.Rol))
	writeJSON(w, http.StatusOK, row)
}
