package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/auth"
	"relevamiento-gesell/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	db    *bun.DB
	jwt   *auth.JWTManager
	perms *PermissionService
	ttl   time.Duration
}

func NewAuthService(db *bun.DB, jwt *auth.JWTManager, perms *PermissionService, ttl time.Duration) *AuthService {
	return &AuthService{db: db, jwt: jwt, perms: perms, ttl: ttl}
}

// SesionUsuario is the identity payload returned on login and on /me,
// including the resolved permission set so the client can hide what the
// caller cannot do. Hiding is cosmetic; every endpoint re-checks.
type SesionUsuario struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	Nombre      string          `json:"nombre"`
	Rol         string          `json:"rol"`
	Oficina     models.Oficinas `json:"oficina"`
	Permissions []string        `json:"permissions"`
}

type LoginResult struct {
	Token string        `json:"token"`
	User  SesionUsuario `json:"user"`
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password report the same error so the endpoint never reveals which.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.Validation("email y password requeridos")
	}

	user := new(models.User)
	err := s.db.NewSelect().Model(user).Where("lower(email) = ?", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Unauthorized("credenciales incorrectas")
	}
	if err != nil {
		return nil, apperrors.Storage("no se pudo leer el usuario", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized("credenciales incorrectas")
	}

	permissions, err := s.perms.EffectivePermissions(ctx, user.Rol)
	if err != nil {
		return nil, err
	}

	token, _, err := s.jwt.GenerateToken(auth.UserClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Nombre: user.Nombre,
		Rol:    user.Rol,
	}, s.ttl)
	if err != nil {
		return nil, apperrors.Storage("no se pudo emitir el token", err)
	}

	// best effort, a failed stamp must not fail the login
	now := time.Now().UTC()
	_, _ = s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_login_at = ?", now).
		Where("id = ?", user.ID).
		Exec(ctx)

	return &LoginResult{
		Token: token,
		User: SesionUsuario{
			ID:          user.ID,
			Email:       user.Email,
			Nombre:      user.Nombre,
			Rol:         user.Rol,
			Oficina:     user.Oficina,
			Permissions: permissions,
		},
	}, nil
}

// Me returns the profile behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*SesionUsuario, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperrors.NotFound("usuario no encontrado")
	}

	user := new(models.User)
	err = s.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, notFoundOrStorage(err, "usuario no encontrado")
	}

	permissions, err := s.perms.EffectivePermissions(ctx, user.Rol)
	if err != nil {
		return nil, err
	}
	return &SesionUsuario{
		ID:          user.ID,
		Email:       user.Email,
		Nombre:      user.Nombre,
		Rol:         user.Rol,
		Oficina:     user.Oficina,
		Permissions: permissions,
	}, nil
}
