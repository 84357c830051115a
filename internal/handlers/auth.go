package handlers

import (
	"net/http"

	"relevamiento-gesell/internal/middleware"
	"relevamiento-gesell/internal/services"
	"relevamiento-gesell/internal/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service *services.AuthService
	logr    *zap.Logger
}

func NewAuthHandler(svc *services.AuthService, logr *zap.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logr: logr}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, err)
		return
	}
	if err := utils.Validate(req); err != nil {
		writeError(w, h.logr, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}

	h.logr.Info("login",
		zap.String("email", result.User.Email),
		zap.String("rol", result.User.Rol))
	writeJSON(w, http.StatusOK, result)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token requerido"})
		return
	}

	perfil, err := h.service.Me(r.Context(), user.UserID)
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, perfil)
}
