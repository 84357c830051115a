package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"relevamiento-gesell/internal/auth"
	"relevamiento-gesell/internal/models"
	"relevamiento-gesell/internal/services"

	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwt   *auth.JWTManager
	perms *services.PermissionService
	logr  *zap.Logger
}

type contextKey string

const contextUserKey contextKey = "user"

func NewAuthMiddleware(jwt *auth.JWTManager, perms *services.PermissionService, logr *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, perms: perms, logr: logr}
}

// CurrentUser returns the authenticated identity attached by JWTAuth, or nil
// on an unauthenticated request.
func CurrentUser(ctx context.Context) *auth.UserClaims {
	u, _ := ctx.Value(contextUserKey).(*auth.UserClaims)
	return u
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// JWTAuth validates the bearer token and attaches the caller's identity to
// the request context. All error paths answer the same way so a probing
// client learns nothing about why a token failed.
func (m *AuthMiddleware) JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			deny(w, http.StatusUnauthorized, "token requerido")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			deny(w, http.StatusUnauthorized, "token inválido")
			return
		}

		claims, err := m.jwt.VerifyToken(tokenString)
		if err != nil {
			m.logr.Warn("token rechazado", zap.Error(err))
			deny(w, http.StatusUnauthorized, "token inválido")
			return
		}

		ctx := context.WithValue(r.Context(), contextUserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission gates a route on one permission key. Admin passes every
// key without a grant lookup.
func (m *AuthMiddleware) RequirePermission(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				deny(w, http.StatusUnauthorized, "token requerido")
				return
			}
			ok, err := m.perms.HasPermission(r.Context(), user.Rol, key)
			if err != nil {
				m.logr.Error("no se pudieron resolver los permisos",
					zap.String("rol", user.Rol), zap.Error(err))
				deny(w, http.StatusInternalServerError, "error interno")
				return
			}
			if !ok {
				deny(w, http.StatusForbidden, "permiso denegado")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRol gates a route on role identity rather than a permission key.
func (m *AuthMiddleware) RequireRol(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				deny(w, http.StatusUnauthorized, "token requerido")
				return
			}
			for _, rol := range roles {
				if user.Rol == rol || user.Rol == models.RolAdmin {
					next.ServeHTTP(w, r)
					return
				}
			}
			deny(w, http.StatusForbidden, "permiso denegado")
		})
	}
}
