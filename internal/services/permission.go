package services

import (
	"context"

	"relevamiento-gesell/internal/apperrors"
	"relevamiento-gesell/internal/models"

	"github.com/uptrace/bun"
)

type PermissionService struct {
	db *bun.DB
}

func NewPermissionService(db *bun.DB) *PermissionService {
	return &PermissionService{db: db}
}

// Catalog returns every grantable permission with its display label.
func (s *PermissionService) Catalog() []models.Permiso {
	return models.Permisos
}

// EffectivePermissions resolves the keys a role holds. Admin short-circuits
// to the full catalog without touching storage, so an empty grant table never
// locks an admin out.
func (s *PermissionService) EffectivePermissions(ctx context.Context, rol string) ([]string, error) {
	if rol == models.RolAdmin {
		return models.PermissionKeys(), nil
	}

	keys := make([]string, 0)
	err := s.db.NewSelect().
		ColumnExpr("permission").
		Table("role_permissions").
		Where("rol = ?", rol).
		Order("permission ASC").
		Scan(ctx, &keys)
	if err != nil {
		return nil, apperrors.Storage("no se pudieron leer los permisos", err)
	}
	return keys, nil
}

// HasPermission reports whether the role may perform the operation gated by
// key.
func (s *PermissionService) HasPermission(ctx context.Context, rol, key string) (bool, error) {
	if rol == models.RolAdmin {
		return true, nil
	}
	keys, err := s.EffectivePermissions(ctx, rol)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if k == key {
			return true, nil
		}
	}
	return false, nil
}

// SetPermissions replaces the role's entire grant set. Unknown keys are
// silently dropped; the stored set after the swap is returned.
func (s *PermissionService) SetPermissions(ctx context.Context, rol string, keys []string) ([]string, error) {
	if !models.RolValido(rol) {
		return nil, apperrors.Validation("rol inválido")
	}

	filtradas := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if !models.IsPermissionKey(k) {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		filtradas = append(filtradas, k)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.RolePermission)(nil)).
			Where("rol = ?", rol).
			Exec(ctx); err != nil {
			return err
		}
		if len(filtradas) == 0 {
			return nil
		}
		rows := make([]models.RolePermission, len(filtradas))
		for i, k := range filtradas {
			rows[i] = models.RolePermission{Rol: rol, Permission: k}
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, apperrors.Storage("no se pudieron guardar los permisos", err)
	}
	return filtradas, nil
}

// EnsureDefaultGrants seeds the grant table on first boot. A non-empty table
// is left alone so admin edits survive restarts.
func (s *PermissionService) EnsureDefaultGrants(ctx context.Context) error {
	exists, err := s.db.NewSelect().
		Model((*models.RolePermission)(nil)).
		Limit(1).
		Exists(ctx)
	if err != nil {
		return apperrors.Storage("no se pudo verificar la tabla de permisos", err)
	}
	if exists {
		return nil
	}

	grants := models.DefaultGrants()
	if _, err := s.db.NewInsert().Model(&grants).Exec(ctx); err != nil {
		return apperrors.Storage("no se pudieron sembrar los permisos por defecto", err)
	}
	return nil
}
