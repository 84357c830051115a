package services

import (
	"context"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UserService struct {
	db *bun.DB
}

func NewUserService(db *bun.DB) *UserService {
	return &UserService{db: db}
}

// UserPublic is what the admin screen sees: no hash, no timestamps.
type UserPublic struct {
	ID      uuid.UUID       `json:"id"`
	Email   string          `json:"email"`
	Nombre  string          `json:"nombre"`
	Rol     string          `json:"rol"`
	Oficina models.Oficinas `json:"oficina"`
}

type UserUpdateInput struct {
	Rol     *string                     `json:"rol"`
	Oficina models.Opt[models.Oficinas] `json:"oficina"`
}

func publicar(u *models.User) UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, Nombre: u.Nombre, Rol: u.Rol, Oficina: u.Oficina}
}

func (s *UserService) List(ctx context.Context) ([]UserPublic, error) {
	users := make([]models.User, 0)
	err := s.db.NewSelect().
		Model(&users).
		Column("id", "email", "nombre", "rol", "oficina").
		Order("nombre ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.Storage("no se pudieron listar los usuarios", err)
	}

	out := make([]UserPublic, len(users))
	for i := range users {
		out[i] = publicar(&users[i])
	}
	return out, nil
}

// Update changes a user's role and office assignment. Only agentes may hold
// more than one office; an explicit null clears the assignment.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UserUpdateInput) (*UserPublic, error) {
	user := new(models.User)
	if err := s.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFoundOrStorage(err, "usuario no encontrado")
	}

	rol := user.Rol
	if in.Rol != nil {
		if !models.RolValido(*in.Rol) {
			return nil, apperrors.Validation("rol inválido")
		}
		rol = *in.Rol
	}

	oficina := user.Oficina
	if in.Oficina.Defined {
		if in.Oficina.Value == nil {
			oficina = models.Oficinas{}
		} else {
			oficina = *in.Oficina.Value
		}
	}
	if oficina.EsMultiple() && rol != models.RolAgente {
		return nil, apperrors.Validation("solo los agentes pueden tener varias oficinas")
	}

	user.Rol = rol
	user.Oficina = oficina
	_, err := s.db.NewUpdate().
		Model(user).
		Column("rol", "oficina").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, apperrors.Storage("no se pudo actualizar el usuario", err)
	}

	out := publicar(user)
	return &out, nil
}
